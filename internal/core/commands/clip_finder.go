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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command at the heart of the pipeline: the multi-modal generation call that
// asks the model for viral clip candidates.
//
// Logic Flow:
//  1. It receives a `genai.FileData` content reference from the context,
//     either a remote video URL or a provider file handle; the command does
//     not care which.
//  2. It renders the clip extraction prompt from a Go template, injecting a
//     few-shot JSON example and the advisory clip-count bounds. The example
//     keeps the model's output shape honest (few-shot prompting); the
//     service itself never enforces those bounds.
//  3. It sends the content reference and the prompt to the model in a single
//     multi-modal request through the quota-aware wrapper, which applies the
//     configured sampling parameters and the JSON-only response MIME type.
//  4. It places the model's raw text reply into the context for the
//     normalizer to parse.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/cor"
	"github.com/yclip/yclip-backend/internal/core/model"
)

// ClipFinder is a command that prompts the generative model to extract
// short-form clip candidates from a video reference.
type ClipFinder struct {
	cor.BaseCommand
	config                   *cloud.Config                      // Application configuration, used for prompt parameters.
	generativeAIModel        *cloud.QuotaAwareGenerativeAIModel // The rate-limited generative model client.
	template                 *template.Template                 // The Go template for building the prompt.
	geminiInputTokenCounter  metric.Int64Counter                // OTel counter for input tokens.
	geminiOutputTokenCounter metric.Int64Counter                // OTel counter for output tokens.
	geminiRetryCounter       metric.Int64Counter                // OTel counter for retries.
}

// NewClipFinder is the constructor for the ClipFinder command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - config: The application's configuration object.
//   - generativeAIModel: The rate-limited wrapper for the generative model.
//   - template: A parsed Go template for the clip extraction prompt.
//
// Outputs:
//   - *ClipFinder: A pointer to the newly instantiated command with
//     initialized telemetry counters.
func NewClipFinder(
	name string,
	config *cloud.Config,
	generativeAIModel *cloud.QuotaAwareGenerativeAIModel,
	template *template.Template) *ClipFinder {

	out := &ClipFinder{
		BaseCommand:       *cor.NewBaseCommand(name),
		config:            config,
		generativeAIModel: generativeAIModel,
		template:          template}

	out.geminiInputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.input", out.GetName()))
	out.geminiOutputTokenCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.output", out.GetName()))
	out.geminiRetryCounter, _ = out.GetMeter().Int64Counter(fmt.Sprintf("%s.gemini.token.retry", out.GetName()))

	return out
}

// GenerateParams creates the map of dynamic data injected into the prompt
// template.
//
// Outputs:
//   - map[string]interface{}: A map of keys and values for template substitution.
func (t *ClipFinder) GenerateParams(_ cor.Context) map[string]interface{} {
	params := make(map[string]interface{})

	// A complete, well-formed JSON example in the prompt (few-shot
	// prompting) markedly improves the structure of the model's replies.
	exampleClips, _ := json.Marshal(model.GetExampleClipList())
	params["EXAMPLE_JSON"] = string(exampleClips)
	params["MIN_CLIPS"] = t.config.Analysis.MinClips
	params["MAX_CLIPS"] = t.config.Analysis.MaxClips
	return params
}

// Execute renders the prompt and issues the generation request.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (t *ClipFinder) Execute(context cor.Context) {
	videoRef := context.Get(t.GetInputParam()).(*genai.FileData)

	var buffer bytes.Buffer
	err := t.template.Execute(&buffer, t.GenerateParams(context))
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("failed to execute prompt template: %w", err))
		return
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{FileData: &genai.FileData{FileURI: videoRef.FileURI, MIMEType: videoRef.MIMEType}},
				{Text: buffer.String()},
			},
			Role: genai.RoleUser,
		},
	}

	out, err := cloud.GenerateMultiModalResponse(
		context.GetContext(),
		t.geminiInputTokenCounter,
		t.geminiOutputTokenCounter,
		t.geminiRetryCounter,
		0,
		t.generativeAIModel,
		contents)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("gemini request failed: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), out)
}
