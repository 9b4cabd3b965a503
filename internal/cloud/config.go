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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files. It centralizes the configurable parameters of the
// relay: the listen address, the analysis pipeline's staging and polling
// policy, the prompt templates sent to the generative model, and the
// per-model sampling parameters.
//
// Structs:
//   - Analysis: Staging and provider-polling policy for uploaded payloads.
//   - PromptTemplates: Text templates for prompts sent to GenAI models.
//   - GenAiLLMModel: Configuration for a generative model, including sampling.
//   - Config: The top-level struct that aggregates all other configuration.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package cloud

import (
	"time"

	"google.golang.org/genai"
)

// DefaultSafetySettings defines the default content safety thresholds for GenAI
// models. They are configured to be non-restrictive: the clips this service
// hunts for are exactly the polarizing, emotionally charged moments that the
// default thresholds tend to block, and the inbound content is user supplied
// rather than redistributed.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// Analysis holds the staging and polling policy for the upload branch of the
// analysis pipeline.
type Analysis struct {
	DefaultMimeType     string `toml:"default_mime_type"`     // MIME type assumed for remote URIs and unrecognized payloads.
	ScratchFilePrefix   string `toml:"scratch_file_prefix"`   // Prefix for uniquely named local scratch files.
	PollIntervalSeconds int    `toml:"poll_interval_seconds"` // Seconds between provider state queries while a file is processing.
	PollMaxAttempts     int    `toml:"poll_max_attempts"`     // Upper bound on state queries before the upload is declared failed.
	MinClips            int    `toml:"min_clips"`             // Lower clip-count bound requested of the model (advisory only).
	MaxClips            int    `toml:"max_clips"`             // Upper clip-count bound requested of the model (advisory only).
}

// PollInterval returns the poll interval as a time.Duration.
func (a *Analysis) PollInterval() time.Duration {
	return time.Duration(a.PollIntervalSeconds) * time.Second
}

// PromptTemplates holds the templates for the prompts sent to the model.
type PromptTemplates struct {
	ClipPrompt string `toml:"clip"` // The template for the viral-clip extraction prompt.
}

// GenAiLLMModel represents the configuration for a generative model (LLM).
type GenAiLLMModel struct {
	Model              string  `toml:"model"`               // The model name, e.g. "models/gemini-2.0-flash".
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the LLM.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the LLM.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the LLM.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the LLM.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the LLM output.
	OutputFormat       string  `toml:"output_format"`       // The desired response MIME type, e.g. "application/json".
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the LLM in requests per second.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application.
		Version         string `toml:"version"`           // The version string reported by the health endpoint.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID used by the telemetry exporters.
		Port            int    `toml:"port"`              // The HTTP listen port. Overridable with the PORT env var.
	} `toml:"application"`
	Analysis        Analysis                 `toml:"analysis"`         // Staging and polling policy.
	PromptTemplates PromptTemplates          `toml:"prompt_templates"` // Prompt templates configuration.
	AgentModels     map[string]GenAiLLMModel `toml:"agent_models"`     // A map of generative models, keyed by a logical name (e.g. "clip-editor").
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The map fields must be initialized before the TOML loader tries
// to populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GenAiLLMModel),
	}
}
