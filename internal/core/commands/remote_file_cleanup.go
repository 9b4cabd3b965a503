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
// command that removes an uploaded video from the provider's Files service
// once the analysis is done.
//
// The delete is best-effort: a failure must never turn a successful analysis
// into an error. It is not silent either: a leaked remote asset costs
// provider storage quota, so failures are logged with the file handle for
// operators to reconcile.
package commands

import (
	"log/slog"

	"google.golang.org/genai"

	"github.com/yclip/yclip-backend/internal/core/cor"
)

// RemoteFileCleanup is a command that deletes an uploaded file from the
// provider's Files service.
type RemoteFileCleanup struct {
	cor.BaseCommand
	client *genai.Client // The client for the provider's Files service.
}

// NewRemoteFileCleanup is the constructor for the RemoteFileCleanup command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - genaiClient: The initialized provider client.
//
// Outputs:
//   - *RemoteFileCleanup: A pointer to the newly instantiated command.
func NewRemoteFileCleanup(name string, genaiClient *genai.Client) *RemoteFileCleanup {
	return &RemoteFileCleanup{BaseCommand: *cor.NewBaseCommand(name), client: genaiClient}
}

// IsExecutable overrides the default to check the canonical remote-file key
// instead of the piped input: there is only something to delete when the
// upload command actually created a remote handle.
func (v *RemoteFileCleanup) IsExecutable(context cor.Context) bool {
	if context == nil || context.GetContext() == nil {
		return false
	}
	file, ok := context.Get(GetRemoteFileParameterName()).(*genai.File)
	return ok && file != nil && file.Name != ""
}

// Execute deletes the remote file. Failures are logged, never propagated.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (v *RemoteFileCleanup) Execute(context cor.Context) {
	file := context.Get(GetRemoteFileParameterName()).(*genai.File)

	if _, err := v.client.Files.Delete(context.GetContext(), file.Name, nil); err != nil {
		v.GetErrorCounter().Add(context.GetContext(), 1)
		slog.WarnContext(context.GetContext(), "failed to delete remote video; asset may be leaked",
			"file", file.Name, "error", err)
		return
	}
	v.GetSuccessCounter().Add(context.GetContext(), 1)
}
