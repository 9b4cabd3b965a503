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
// command that stages an embedded video payload on local disk.
//
// Logic Flow:
// The analyze endpoint may carry the video as a base64 string instead of a
// URL. The provider's file-upload facility wants a file path, so this
// command bridges the two:
//
//  1. It receives the base64 string from the context.
//  2. It decodes it; a malformed payload is a client-caused error that stops
//     the chain.
//  3. It sniffs the decoded bytes with the filetype library to recover the
//     real container format, falling back to the configured default MIME
//     type when the bytes are not a recognized format.
//  4. It writes the bytes to a uniquely named scratch file under the OS temp
//     directory. The name embeds a UUID, so concurrent requests never share
//     a scratch file.
//  5. It registers the scratch file with the context's temp-file tracking,
//     which guarantees deletion on every exit path, and places a
//     StagedVideo describing the file into the output parameter.
package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/cor"
)

// StagedVideo describes a video payload staged on local disk, ready for
// upload to the provider.
type StagedVideo struct {
	Path     string // Absolute path of the scratch file.
	MIMEType string // Sniffed or assumed MIME type of the content.
}

// VideoPayloadDecode is a command that decodes a base64 video payload into a
// uniquely named local scratch file.
type VideoPayloadDecode struct {
	cor.BaseCommand
	analysis *cloud.Analysis // Staging policy: scratch prefix and default MIME type.
}

// NewVideoPayloadDecode is the constructor for the VideoPayloadDecode command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - analysis: The analysis section of the application configuration.
//
// Outputs:
//   - *VideoPayloadDecode: A pointer to the newly instantiated command.
func NewVideoPayloadDecode(name string, analysis *cloud.Analysis) *VideoPayloadDecode {
	return &VideoPayloadDecode{BaseCommand: *cor.NewBaseCommand(name), analysis: analysis}
}

// Execute decodes the payload and writes the scratch file.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (c *VideoPayloadDecode) Execute(context cor.Context) {
	encoded := context.Get(c.GetInputParam()).(string)

	videoBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to decode video payload: %w", err))
		return
	}

	// Recover the real container format from the magic bytes. Unknown
	// formats are still forwarded with the assumed default; the provider is
	// the authority on whether it can process them.
	mimeType := c.analysis.DefaultMimeType
	ext := "mp4"
	if kind, kerr := filetype.Match(videoBytes); kerr == nil && kind != filetype.Unknown {
		mimeType = kind.MIME.Value
		ext = kind.Extension
	}

	scratchPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s%s.%s", c.analysis.ScratchFilePrefix, uuid.NewString(), ext))
	if err := os.WriteFile(scratchPath, videoBytes, 0o600); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("could not write scratch file: %w", err))
		return
	}

	// Track the scratch file so the context removes it no matter how the
	// chain exits.
	context.AddTempFile(scratchPath)

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), &StagedVideo{Path: scratchPath, MIMEType: mimeType})
}
