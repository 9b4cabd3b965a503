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

// Package workflow defines the high-level business logic orchestrations,
// combining commands into coherent pipelines. This file implements the clip
// analysis workflow in its two variants: one for a remote video URL, which
// the model can read directly, and one for an embedded payload, which must
// be staged and uploaded before the model can see it. Both variants end in
// the same generation and normalization steps, so the service layer treats
// them interchangeably.
package workflow

import (
	"text/template"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/commands"
	"github.com/yclip/yclip-backend/internal/core/cor"
)

// ClipListOutputParamName is the context key under which the finished
// workflow stores the normalized clip list. The service layer reads the
// result back from this key after executing the chain.
const ClipListOutputParamName = "__clip_list_output__"

// ClipAnalysisWorkflow wraps one variant of the analysis chain. It is itself
// a command, so it can be executed, traced, and nested like any other.
type ClipAnalysisWorkflow struct {
	cor.BaseCommand
	chain cor.Chain // The underlying chain of commands to be executed.
}

// Execute runs the workflow by invoking the underlying chain.
//
// Inputs:
//   - context: The chain of responsibility context for this execution.
func (m *ClipAnalysisWorkflow) Execute(context cor.Context) {
	m.chain.Execute(context)
}

// IsExecutable defers to the underlying chain.
func (m *ClipAnalysisWorkflow) IsExecutable(context cor.Context) bool {
	return m.chain.IsExecutable(context)
}

// appendGenerationSteps adds the steps shared by both variants: the
// generation call and the reply normalizer.
func appendGenerationSteps(out cor.Chain, config *cloud.Config, genaiModel *cloud.QuotaAwareGenerativeAIModel, clipTemplate *template.Template) {
	// Ask the model for clip candidates. Input: a *genai.FileData content
	// reference. Output: the model's raw text reply.
	out.AddCommand(commands.NewClipFinder("find-viral-clips", config, genaiModel, clipTemplate))

	// Parse the reply into a typed clip list, tolerating fenced and
	// bare-array reply shapes.
	out.AddCommand(commands.NewClipListJsonToStruct("convert-clip-list", ClipListOutputParamName))
}

// NewURLAnalysisPipeline builds the workflow variant for a remote video URL.
// The chain input must be a *genai.FileData pointing at the URL; no upload
// or polling is performed on this path.
//
// Inputs:
//   - config: The application's overall configuration.
//   - serviceClients: The initialized provider clients.
//   - agentModelName: The logical name of the agent model config to use
//     (e.g. "clip-editor").
//   - clipTemplate: The parsed clip extraction prompt template.
//
// Outputs:
//   - *ClipAnalysisWorkflow: The initialized workflow.
func NewURLAnalysisPipeline(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	agentModelName string,
	clipTemplate *template.Template) *ClipAnalysisWorkflow {

	wf := &ClipAnalysisWorkflow{BaseCommand: *cor.NewBaseCommand("url-clip-analysis")}
	out := cor.NewBaseChain(wf.GetName())
	appendGenerationSteps(out, config, serviceClients.AgentModels[agentModelName], clipTemplate)
	wf.chain = out
	return wf
}

// NewUploadAnalysisPipeline builds the workflow variant for an embedded
// base64 payload. The chain input must be the base64 string itself.
//
// The remote uploaded asset is deliberately NOT cleaned up inside this
// chain: the chain stops at the first error, which would leak the asset on
// a failed generation call. The service layer runs the cleanup command after
// the chain on every path instead.
//
// Inputs:
//   - config: The application's overall configuration.
//   - serviceClients: The initialized provider clients.
//   - agentModelName: The logical name of the agent model config to use.
//   - clipTemplate: The parsed clip extraction prompt template.
//
// Outputs:
//   - *ClipAnalysisWorkflow: The initialized workflow.
func NewUploadAnalysisPipeline(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	agentModelName string,
	clipTemplate *template.Template) *ClipAnalysisWorkflow {

	wf := &ClipAnalysisWorkflow{BaseCommand: *cor.NewBaseCommand("upload-clip-analysis")}
	out := cor.NewBaseChain(wf.GetName())

	// Step 1: Decode the payload into a uniquely named scratch file. The
	// file is tracked by the context and removed on every exit path.
	out.AddCommand(commands.NewVideoPayloadDecode("decode-video-payload", &config.Analysis))

	// Step 2: Upload the scratch file to the provider's Files service and
	// poll until it is ready, bounded by the configured attempt budget.
	out.AddCommand(commands.NewVideoFileUpload("upload-video-file", serviceClients.GenAIClient, &config.Analysis))

	// Steps 3-4: Generate and normalize, same as the URL variant.
	appendGenerationSteps(out, config, serviceClients.AgentModels[agentModelName], clipTemplate)

	wf.chain = out
	return wf
}
