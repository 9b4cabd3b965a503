// Copyright 2025 YClip Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// response normalizer, the data transformation step that follows the
// generation call.
//
// Logic Flow:
// The prompt demands JSON-only output, but models drift: replies show up
// wrapped in markdown fences, or as a bare array instead of the requested
// {"clips": [...]} object. The normalizer accepts all of those shapes
// rather than failing the request on formatting noise.
//
//  1. It receives the raw text reply from the context.
//  2. It strips literal ```json fence markers if present.
//  3. It parses the remainder as JSON. Unparsable text is an error.
//  4. Shape coercion: an object with a "clips" key uses that key's value as
//     the clip list; a bare array is the clip list; any other parsed value
//     normalizes to an empty clip list, not an error.
//  5. Individual clip fields are not validated here; a clip whose fields
//     cannot coerce to strings fails the unmarshal and surfaces as an error.
//  6. It places the resulting `model.ClipList` into the output parameter.
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yclip/yclip-backend/internal/core/cor"
	"github.com/yclip/yclip-backend/internal/core/model"
)

// ClipListJsonToStruct is a command that parses the model's text reply into
// a ClipList, tolerating the reply shapes models actually produce.
type ClipListJsonToStruct struct {
	cor.BaseCommand
}

// NewClipListJsonToStruct is the constructor for the ClipListJsonToStruct
// command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the resulting struct is stored.
//
// Outputs:
//   - *ClipListJsonToStruct: A pointer to the newly instantiated command.
func NewClipListJsonToStruct(name string, outputParamName string) *ClipListJsonToStruct {
	out := ClipListJsonToStruct{BaseCommand: *cor.NewBaseCommand(name)}
	out.OutputParamName = outputParamName
	return &out
}

// stripFences removes markdown code-fence markers the model sometimes wraps
// around its JSON reply.
func stripFences(in string) string {
	out := strings.TrimSpace(in)
	out = strings.ReplaceAll(out, "```json", "")
	out = strings.ReplaceAll(out, "```", "")
	return strings.TrimSpace(out)
}

// Execute parses the reply and coerces it into a ClipList.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (s *ClipListJsonToStruct) Execute(context cor.Context) {
	in := context.Get(s.GetInputParam()).(string)

	var parsed interface{}
	if err := json.Unmarshal([]byte(stripFences(in)), &parsed); err != nil {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), fmt.Errorf("failed to parse model reply as JSON: %w", err))
		return
	}

	// Pick the value that holds the clip list, depending on reply shape.
	var clipsValue interface{}
	switch v := parsed.(type) {
	case map[string]interface{}:
		clipsValue = v["clips"]
	case []interface{}:
		clipsValue = v
	}

	doc := &model.ClipList{Clips: make([]model.Clip, 0)}
	if clipsValue != nil {
		// Re-marshal the selected value and decode it into the typed list.
		// This is the only shape check the relay performs.
		raw, err := json.Marshal(clipsValue)
		if err == nil {
			err = json.Unmarshal(raw, &doc.Clips)
		}
		if err != nil {
			s.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(s.GetName(), fmt.Errorf("model reply did not match the clip schema: %w", err))
			return
		}
	}

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(s.GetOutputParam(), doc)
	context.Add(cor.CtxOut, doc)
}
