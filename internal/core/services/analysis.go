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

// Package services contains the business services exposed to the API layer.
// This file implements the AnalysisService, the single entry point for clip
// analysis. It selects the transport for an inbound request (remote URL
// versus embedded payload), runs the matching workflow variant, guarantees
// scratch and remote cleanup on every path, and converts the workflow
// outcome into either a response or an error for the handler to map onto an
// HTTP status.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/commands"
	"github.com/yclip/yclip-backend/internal/core/cor"
	"github.com/yclip/yclip-backend/internal/core/model"
	"github.com/yclip/yclip-backend/internal/core/workflow"
)

// ErrMissingInput is returned when a request carries neither a video URL nor
// an embedded payload. The API layer maps it to HTTP 400.
var ErrMissingInput = errors.New("either video_url or video_base64 required")

// AnalysisService orchestrates the clip analysis pipelines. One instance is
// built at startup and shared across requests; it holds no per-request
// state, so it is safe for concurrent use.
type AnalysisService struct {
	Config         *cloud.Config
	Clients        *cloud.ServiceClients
	urlPipeline    *workflow.ClipAnalysisWorkflow
	uploadPipeline *workflow.ClipAnalysisWorkflow
	remoteCleanup  *commands.RemoteFileCleanup
}

// NewAnalysisService constructs the service, compiling the prompt template
// and building both workflow variants.
//
// Inputs:
//   - config: The loaded application configuration.
//   - clients: The initialized provider clients.
//   - agentModelName: The logical name of the agent model config to use
//     (e.g. "clip-editor").
//
// Outputs:
//   - *AnalysisService: The ready-to-use service.
//   - error: An error if the prompt template fails to parse or the agent
//     model is not configured.
func NewAnalysisService(config *cloud.Config, clients *cloud.ServiceClients, agentModelName string) (*AnalysisService, error) {
	if _, ok := clients.AgentModels[agentModelName]; !ok {
		return nil, fmt.Errorf("agent model %q is not configured", agentModelName)
	}

	clipTemplate, err := template.New("clip-prompt").Parse(config.PromptTemplates.ClipPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clip prompt template: %w", err)
	}

	return &AnalysisService{
		Config:         config,
		Clients:        clients,
		urlPipeline:    workflow.NewURLAnalysisPipeline(config, clients, agentModelName, clipTemplate),
		uploadPipeline: workflow.NewUploadAnalysisPipeline(config, clients, agentModelName, clipTemplate),
		remoteCleanup:  commands.NewRemoteFileCleanup("cleanup-remote-video", clients.GenAIClient),
	}, nil
}

// Analyze runs the clip analysis pipeline for one request.
//
// Transport selection follows the request's Source(): a URL builds a direct
// content reference with the configured default MIME type and skips upload
// and polling entirely; a payload runs the staging pipeline. When both
// fields are set the URL wins.
//
// Inputs:
//   - ctx: The request context. Cancellation aborts polling and generation.
//   - req: The parsed analyze request.
//
// Outputs:
//   - *model.AnalyzeResponse: The normalized clip list on success.
//   - error: ErrMissingInput for an empty request, otherwise the first
//     pipeline failure.
func (s *AnalysisService) Analyze(ctx context.Context, req *model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	source := req.Source()
	if source == model.ContentSourceNone {
		return nil, ErrMissingInput
	}

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	// Scratch files staged by the decode step are removed here on every
	// exit path, success or failure.
	defer chainCtx.Close()

	switch source {
	case model.ContentSourceURL:
		slog.InfoContext(ctx, "analyzing remote video", "url", req.VideoURL)
		ref := cloud.NewFileData(req.VideoURL, s.Config.Analysis.DefaultMimeType)
		chainCtx.Add(cor.CtxIn, &ref)
		s.urlPipeline.Execute(chainCtx)
	case model.ContentSourcePayload:
		slog.InfoContext(ctx, "analyzing uploaded video payload")
		chainCtx.Add(cor.CtxIn, req.VideoBase64)
		s.uploadPipeline.Execute(chainCtx)
		// Best-effort remote cleanup runs outside the chain so it is
		// attempted even when a later chain step failed.
		if s.remoteCleanup.IsExecutable(chainCtx) {
			s.remoteCleanup.Execute(chainCtx)
		}
	}

	if chainCtx.HasErrors() {
		errs := make([]error, 0, len(chainCtx.GetErrors()))
		for name, err := range chainCtx.GetErrors() {
			slog.ErrorContext(ctx, "analysis step failed", "step", name, "error", err)
			errs = append(errs, err)
		}
		return nil, errors.Join(errs...)
	}

	clipList, ok := chainCtx.Get(workflow.ClipListOutputParamName).(*model.ClipList)
	if !ok {
		return nil, errors.New("analysis finished without producing a clip list")
	}
	return &model.AnalyzeResponse{Clips: clipList.Clips}, nil
}
