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

// This file covers the payload staging command: base64 decoding, MIME
// sniffing, and the scratch-file lifecycle.
package commands_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/commands"
	"github.com/yclip/yclip-backend/internal/core/cor"
	"github.com/yclip/yclip-backend/internal/testutil"
)

func testAnalysisConfig() *cloud.Analysis {
	return &cloud.Analysis{
		DefaultMimeType:   "video/mp4",
		ScratchFilePrefix: "yclip-decode-test-",
	}
}

// TestDecodeStagesScratchFile verifies the full staging lifecycle: a valid
// payload is decoded to a uniquely named scratch file with restrictive
// permissions, the container MIME type is recovered from the magic bytes,
// the file is tracked by the context, and Close removes it.
func TestDecodeStagesScratchFile(t *testing.T) {
	cmd := commands.NewVideoPayloadDecode("decode-video-payload", testAnalysisConfig())

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, testutil.GetTestVideoPayload())

	cmd.Execute(chainCtx)
	assert.False(t, chainCtx.HasErrors())

	staged, ok := chainCtx.Get(cor.CtxOut).(*commands.StagedVideo)
	assert.True(t, ok)
	assert.Equal(t, "video/mp4", staged.MIMEType)
	assert.True(t, strings.HasPrefix(filepath.Base(staged.Path), "yclip-decode-test-"))

	info, err := os.Stat(staged.Path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Contains(t, chainCtx.GetTempFiles(), staged.Path)

	// Decoded bytes match the original payload.
	raw, err := base64.StdEncoding.DecodeString(testutil.GetTestVideoPayload())
	assert.NoError(t, err)
	written, err := os.ReadFile(staged.Path)
	assert.NoError(t, err)
	assert.Equal(t, raw, written)

	chainCtx.Close()
	_, err = os.Stat(staged.Path)
	assert.True(t, os.IsNotExist(err))
}

// TestDecodeUnknownFormatFallsBack verifies that bytes with no recognizable
// container magic still stage, carrying the configured default MIME type.
func TestDecodeUnknownFormatFallsBack(t *testing.T) {
	cmd := commands.NewVideoPayloadDecode("decode-video-payload", testAnalysisConfig())

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	defer chainCtx.Close()
	chainCtx.Add(cor.CtxIn, base64.StdEncoding.EncodeToString([]byte("not a video container")))

	cmd.Execute(chainCtx)
	assert.False(t, chainCtx.HasErrors())

	staged, ok := chainCtx.Get(cor.CtxOut).(*commands.StagedVideo)
	assert.True(t, ok)
	assert.Equal(t, "video/mp4", staged.MIMEType)
	assert.True(t, strings.HasSuffix(staged.Path, ".mp4"))
}

// TestDecodeRejectsInvalidBase64 verifies that a payload that does not
// decode records an error and stages nothing.
func TestDecodeRejectsInvalidBase64(t *testing.T) {
	cmd := commands.NewVideoPayloadDecode("decode-video-payload", testAnalysisConfig())

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "%%% not base64 %%%")

	cmd.Execute(chainCtx)
	assert.True(t, chainCtx.HasErrors())
	assert.Nil(t, chainCtx.Get(cor.CtxOut))
	assert.Empty(t, chainCtx.GetTempFiles())
}
