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

// Package cor_test contains unit tests for the chain-of-responsibility
// building blocks: input/output piping between commands, error short
// circuiting, and scratch file tracking on the shared context.
package cor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/yclip/yclip-backend/internal/core/cor"
)

// appendCommand is a minimal command that appends its suffix to the string
// it receives, passing the result down the chain.
type appendCommand struct {
	cor.BaseCommand
	suffix string
}

func newAppendCommand(name string, suffix string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix}
}

func (c *appendCommand) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)
	context.Add(c.GetOutputParam(), in+c.suffix)
}

// failingCommand always records an error against its own name.
type failingCommand struct {
	cor.BaseCommand
}

func newFailingCommand(name string) *failingCommand {
	return &failingCommand{BaseCommand: *cor.NewBaseCommand(name)}
}

func (c *failingCommand) Execute(context cor.Context) {
	context.AddError(c.GetName(), errors.New("boom"))
}

// TestChainPipesOutputToInput verifies that each command's output becomes
// the next command's input. After the chain finishes, the flip-flop leaves
// the final output in the input slot; commands that need a durable result
// write it under a named parameter instead.
func TestChainPipesOutputToInput(t *testing.T) {
	chain := cor.NewBaseChain("append-chain")
	chain.AddCommand(newAppendCommand("first", "-a"))
	chain.AddCommand(newAppendCommand("second", "-b"))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "seed")

	chain.Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	assert.Equal(t, "seed-a-b", chainCtx.Get(cor.CtxIn))
	assert.Nil(t, chainCtx.Get(cor.CtxOut))
}

// TestChainStopsOnError verifies that a command error halts the chain by
// default: commands after the failure never run.
func TestChainStopsOnError(t *testing.T) {
	chain := cor.NewBaseChain("failing-chain")
	chain.AddCommand(newFailingCommand("exploder"))
	chain.AddCommand(newAppendCommand("unreached", "-never"))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, "seed")

	chain.Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	assert.NotNil(t, chainCtx.GetErrors()["exploder"])
	assert.Nil(t, chainCtx.Get(cor.CtxOut))
}

// TestContextCloseRemovesTempFiles verifies scratch file tracking: tracked
// files are removed by Close, and files that already vanished do not
// disturb cleanup of the rest.
func TestContextCloseRemovesTempFiles(t *testing.T) {
	real := filepath.Join(os.TempDir(), "cor-test-"+uuid.NewString())
	assert.NoError(t, os.WriteFile(real, []byte("scratch"), 0o600))

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.AddTempFile(filepath.Join(os.TempDir(), "cor-test-missing-"+uuid.NewString()))
	chainCtx.AddTempFile(real)

	chainCtx.Close()

	_, err := os.Stat(real)
	assert.True(t, os.IsNotExist(err))
}
