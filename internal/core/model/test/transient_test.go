// Copyright 2025 YClip Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model_test contains unit tests for the request and response
// models. This file covers transport selection on the analyze request and
// the few-shot example used in prompt construction.
package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yclip/yclip-backend/internal/core/model"
)

// TestSourceSelection verifies how a request picks its content transport:
// an empty request selects nothing, a single populated field selects its
// transport, and when both fields are populated the URL wins.
func TestSourceSelection(t *testing.T) {
	empty := &model.AnalyzeRequest{}
	assert.Equal(t, model.ContentSourceNone, empty.Source())

	urlOnly := &model.AnalyzeRequest{VideoURL: "https://youtu.be/xyz"}
	assert.Equal(t, model.ContentSourceURL, urlOnly.Source())

	payloadOnly := &model.AnalyzeRequest{VideoBase64: "AAAA"}
	assert.Equal(t, model.ContentSourcePayload, payloadOnly.Source())

	both := &model.AnalyzeRequest{VideoURL: "https://youtu.be/xyz", VideoBase64: "AAAA"}
	assert.Equal(t, model.ContentSourceURL, both.Source())
}

// TestAnalyzeRequestBinding verifies the JSON field names clients use to
// submit a request.
func TestAnalyzeRequestBinding(t *testing.T) {
	raw := `{"video_url": "https://youtu.be/xyz", "video_base64": "AAAA"}`

	var req model.AnalyzeRequest
	err := json.Unmarshal([]byte(raw), &req)
	assert.NoError(t, err)
	assert.Equal(t, "https://youtu.be/xyz", req.VideoURL)
	assert.Equal(t, "AAAA", req.VideoBase64)
}

// TestExampleClipList verifies the few-shot example is non-empty and
// marshals to the exact wire shape the model is asked to reproduce: a JSON
// object with a top-level "clips" array of start/end/description objects.
func TestExampleClipList(t *testing.T) {
	example := model.GetExampleClipList()
	assert.NotEmpty(t, example.Clips)

	raw, err := json.Marshal(example)
	assert.NoError(t, err)

	var decoded map[string][]model.Clip
	err = json.Unmarshal(raw, &decoded)
	assert.NoError(t, err)
	assert.Len(t, decoded["clips"], len(example.Clips))

	for _, clip := range example.Clips {
		assert.NotEmpty(t, clip.Start)
		assert.NotEmpty(t, clip.End)
		assert.NotEmpty(t, clip.Description)
	}
}
