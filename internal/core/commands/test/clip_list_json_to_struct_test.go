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

// Package commands_test contains unit tests for the pipeline commands.
// This file covers the reply normalizer: the command that turns the model's
// raw text into a typed clip list while tolerating the shapes models
// actually produce.
package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yclip/yclip-backend/internal/core/commands"
	"github.com/yclip/yclip-backend/internal/core/cor"
	"github.com/yclip/yclip-backend/internal/core/model"
	"github.com/yclip/yclip-backend/internal/testutil"
)

const outputParam = "__test_clip_list__"

// runNormalizer executes the normalizer command against one raw reply and
// returns the workflow context for inspection.
func runNormalizer(t *testing.T, reply string) cor.Context {
	t.Helper()
	cmd := commands.NewClipListJsonToStruct("convert-clip-list", outputParam)

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, reply)
	assert.True(t, cmd.IsExecutable(chainCtx))

	cmd.Execute(chainCtx)
	return chainCtx
}

// TestNormalizeCanonicalReply verifies the happy path: a JSON object with a
// top-level "clips" key becomes a typed list with all fields intact, stored
// under both the named output parameter and the chain output slot.
func TestNormalizeCanonicalReply(t *testing.T) {
	chainCtx := runNormalizer(t, testutil.GetDictModelReply())
	assert.False(t, chainCtx.HasErrors())

	out, ok := chainCtx.Get(outputParam).(*model.ClipList)
	assert.True(t, ok)
	assert.Len(t, out.Clips, 2)
	assert.Equal(t, "00:00:05", out.Clips[0].Start)
	assert.Equal(t, "00:00:19", out.Clips[0].End)
	assert.NotEmpty(t, out.Clips[0].Description)

	chained, ok := chainCtx.Get(cor.CtxOut).(*model.ClipList)
	assert.True(t, ok)
	assert.Equal(t, out, chained)
}

// TestNormalizeFencedReply verifies that a reply wrapped in a markdown code
// fence parses the same as its unfenced equivalent. Models wrap replies in
// fences even when told not to, so this shape is the common case.
func TestNormalizeFencedReply(t *testing.T) {
	chainCtx := runNormalizer(t, testutil.GetFencedModelReply())
	assert.False(t, chainCtx.HasErrors())

	out, ok := chainCtx.Get(outputParam).(*model.ClipList)
	assert.True(t, ok)
	assert.Len(t, out.Clips, 2)
}

// TestNormalizeBareArrayReply verifies that a reply where the model skipped
// the wrapping object is accepted as the clip list itself.
func TestNormalizeBareArrayReply(t *testing.T) {
	chainCtx := runNormalizer(t, testutil.GetBareArrayModelReply())
	assert.False(t, chainCtx.HasErrors())

	out, ok := chainCtx.Get(outputParam).(*model.ClipList)
	assert.True(t, ok)
	assert.Len(t, out.Clips, 1)
	assert.Equal(t, "00:00:12", out.Clips[0].Start)
}

// TestNormalizeUnexpectedShape verifies that valid JSON in a shape the
// pipeline does not recognize degrades to an empty clip list rather than an
// error.
func TestNormalizeUnexpectedShape(t *testing.T) {
	chainCtx := runNormalizer(t, testutil.GetUnexpectedShapeModelReply())
	assert.False(t, chainCtx.HasErrors())

	out, ok := chainCtx.Get(outputParam).(*model.ClipList)
	assert.True(t, ok)
	assert.Empty(t, out.Clips)
}

// TestNormalizeMalformedReply verifies that a reply that is not JSON at all
// records an error against the command and produces no output.
func TestNormalizeMalformedReply(t *testing.T) {
	chainCtx := runNormalizer(t, testutil.GetMalformedModelReply())
	assert.True(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(outputParam))
}
