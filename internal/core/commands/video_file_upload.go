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
// command that uploads a staged video to the provider's file service and
// waits for it to become usable.
//
// Logic Flow:
// Gemini cannot analyze raw bytes in a generation call; the video must first
// live in the provider's Files service. After the upload API call the file
// sits in a PROCESSING state and is not yet addressable by the model.
//
//  1. It takes the StagedVideo (path + MIME type) produced by the decode
//     command.
//  2. It uploads the file with `Files.UploadFromPath`.
//  3. It polls `Files.Get` on a fixed interval until the file leaves the
//     processing state. The loop is bounded twice over: by a configured
//     maximum attempt count and by the request context, so a provider that
//     never finishes processing cannot pin a request forever.
//  4. A terminal FAILED state, any non-ACTIVE terminal state, an exhausted
//     attempt budget, or a canceled context each stop the chain with an
//     error.
//  5. Only on ACTIVE does it place a `genai.FileData` reference into the
//     output parameter for the generation call. The provider file handle is
//     stored under a canonical key for the cleanup command as soon as the
//     upload returns.
package commands

import (
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/cor"
)

// VideoFileUpload is a command that submits a local scratch file to the
// provider's Files service and polls until it reaches a terminal state.
type VideoFileUpload struct {
	cor.BaseCommand
	client   *genai.Client   // The client for the provider's Files service.
	analysis *cloud.Analysis // Polling policy: interval and attempt budget.
}

// NewVideoFileUpload is the constructor for the VideoFileUpload command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - genaiClient: The initialized provider client.
//   - analysis: The analysis section of the application configuration.
//
// Outputs:
//   - *VideoFileUpload: A pointer to the newly instantiated command.
func NewVideoFileUpload(name string, genaiClient *genai.Client, analysis *cloud.Analysis) *VideoFileUpload {
	return &VideoFileUpload{BaseCommand: *cor.NewBaseCommand(name), client: genaiClient, analysis: analysis}
}

// GetRemoteFileParameterName returns the canonical key under which the
// provider file handle is stored in the context. The cleanup command reads
// the same key, so the two stay consistent by construction.
func GetRemoteFileParameterName() string {
	return "__REMOTE_VIDEO_FILE__"
}

// Execute uploads the staged video and polls for its terminal state.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (v *VideoFileUpload) Execute(context cor.Context) {
	staged := context.Get(v.GetInputParam()).(*StagedVideo)
	ctx := context.GetContext()

	file, err := v.client.Files.UploadFromPath(ctx, staged.Path, &genai.UploadFileConfig{
		MIMEType: staged.MIMEType,
	})
	if err != nil {
		v.GetErrorCounter().Add(ctx, 1)
		context.AddError(v.GetName(), fmt.Errorf("failed to upload video to file service: %w", err))
		return
	}

	// Record the handle before polling so cleanup still runs if the poll
	// loop errors out.
	context.Add(GetRemoteFileParameterName(), file)

	// === Polling Loop ===
	// The file is not usable immediately after upload; wait for the
	// provider to finish processing, but never indefinitely.
	attempts := 0
	for file.State == genai.FileStateProcessing {
		if attempts >= v.analysis.PollMaxAttempts {
			v.GetErrorCounter().Add(ctx, 1)
			context.AddError(v.GetName(), fmt.Errorf("video %s still processing after %d polls; giving up", file.Name, attempts))
			return
		}
		select {
		case <-ctx.Done():
			v.GetErrorCounter().Add(ctx, 1)
			context.AddError(v.GetName(), fmt.Errorf("canceled while waiting for video processing: %w", ctx.Err()))
			return
		case <-time.After(v.analysis.PollInterval()):
		}
		attempts++
		if file, err = v.client.Files.Get(ctx, file.Name, nil); err != nil {
			v.GetErrorCounter().Add(ctx, 1)
			context.AddError(v.GetName(), fmt.Errorf("failed to get file status during processing: %w", err))
			return
		}
		context.Add(GetRemoteFileParameterName(), file)
	}

	if file.State == genai.FileStateFailed {
		v.GetErrorCounter().Add(ctx, 1)
		context.AddError(v.GetName(), fmt.Errorf("provider failed to process video %s", file.Name))
		return
	}

	// Only ACTIVE files are addressable by the model. Anything else leaving
	// the processing state (including STATE_UNSPECIFIED) is an error.
	if file.State != genai.FileStateActive {
		v.GetErrorCounter().Add(ctx, 1)
		context.AddError(v.GetName(), fmt.Errorf("video %s left processing in unexpected state %q", file.Name, file.State))
		return
	}

	v.GetSuccessCounter().Add(ctx, 1)
	context.Add(v.GetOutputParam(), &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType})
}
