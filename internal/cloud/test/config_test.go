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

// Package cloud_test contains unit tests for the configuration layer: the
// hierarchical TOML loading and the values the rest of the pipeline depends
// on.
package cloud_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	test "github.com/yclip/yclip-backend/internal/testutil"
)

// TestHierarchicalConfigLoading verifies that the base file supplies shared
// values and the test runtime file overrides the ones it names. The listen
// port comes from the base file only; the application name and polling
// policy are overridden for tests.
func TestHierarchicalConfigLoading(t *testing.T) {
	config := test.GetConfig()

	// Base values that the test override does not touch.
	assert.Equal(t, 8000, config.Application.Port)
	assert.Equal(t, 3, config.Analysis.MinClips)
	assert.Equal(t, 7, config.Analysis.MaxClips)
	assert.Equal(t, "video/mp4", config.Analysis.DefaultMimeType)
	assert.NotEmpty(t, config.Analysis.ScratchFilePrefix)

	// Values the test runtime overrides.
	assert.Equal(t, "yclip-backend-test", config.Application.Name)
	assert.Equal(t, "test", config.Application.Version)
	assert.Equal(t, 1, config.Analysis.PollIntervalSeconds)
	assert.Equal(t, 3, config.Analysis.PollMaxAttempts)
	assert.Equal(t, time.Second, config.Analysis.PollInterval())
}

// TestAgentModelConfig verifies the clip-editor model section carries the
// generation parameters the inference call is built from.
func TestAgentModelConfig(t *testing.T) {
	config := test.GetConfig()

	agent, ok := config.AgentModels["clip-editor"]
	assert.True(t, ok)
	assert.Equal(t, "models/gemini-2.0-flash", agent.Model)
	assert.NotEmpty(t, agent.SystemInstructions)
	assert.InDelta(t, 0.7, float64(agent.Temperature), 0.0001)
	assert.InDelta(t, 0.95, float64(agent.TopP), 0.0001)
	assert.InDelta(t, 64.0, float64(agent.TopK), 0.0001)
	assert.Equal(t, int32(8192), agent.MaxTokens)
	assert.Equal(t, "application/json", agent.OutputFormat)
	assert.GreaterOrEqual(t, agent.RateLimit, 1)
}

// TestClipPromptTemplate verifies the prompt template is present and still
// carries the placeholders the prompt builder injects at request time.
func TestClipPromptTemplate(t *testing.T) {
	config := test.GetConfig()

	prompt := config.PromptTemplates.ClipPrompt
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.MIN_CLIPS}}")
	assert.Contains(t, prompt, "{{.MAX_CLIPS}}")
	assert.Contains(t, prompt, "{{.EXAMPLE_JSON}}")
}
