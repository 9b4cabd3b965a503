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

// Package cloud provides components for interacting with the external
// Generative AI provider. This file is responsible for initializing and
// holding the client objects the relay needs. It acts as a dependency
// injection container, creating a single `ServiceClients` struct that is
// passed throughout the application instead of living as ambient
// process-wide state.
//
// Logic Flow:
//  1. `NewCloudServiceClients` is called at application startup with the
//     loaded configuration.
//  2. It reads the provider API key from the environment. A missing key is a
//     hard startup failure; there is deliberately no embedded fallback.
//  3. It constructs the GenAI client against the Gemini API backend.
//  4. It reads the configuration to build one quota-aware model wrapper per
//     configured agent model, applying sampling parameters, system
//     instructions, and safety settings.
//  5. The assembled struct is handed to the composition root, which injects
//     it into the services and workflows that need it.
//
// Structs:
//   - ServiceClients: A container holding the GenAI client and the
//     configured agent models.
//
// Functions:
//   - NewCloudServiceClients: A factory that creates and configures all
//     provider clients based on the application's configuration.
package cloud

import (
	"context"
	"errors"
	"os"

	"google.golang.org/genai"
)

// EnvGeminiAPIKey is the environment variable holding the provider API key.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

// ErrMissingAPIKey is returned when the provider API key is absent from the
// environment at startup.
var ErrMissingAPIKey = errors.New("cloud: " + EnvGeminiAPIKey + " is required")

// ServiceClients is a container for the clients that talk to the external
// Generative AI provider. This pattern is a form of dependency injection:
// the struct is built once at startup and shared across the application, so
// no package holds its own global client handle.
type ServiceClients struct {
	GenAIClient *genai.Client                           // Client for the Gemini API, including the Files service.
	AgentModels map[string]*QuotaAwareGenerativeAIModel // Configured GenAI agent (LLM) models, keyed by a logical name.
}

// NewCloudServiceClients is a factory function that initializes the provider
// clients based on the provided configuration. It is the single entry point
// for setting up the application's external dependencies.
//
// Inputs:
//   - ctx: The root context.Context for the application.
//   - config: A pointer to the loaded application configuration.
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: An error if the API key is missing or a client fails to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	apiKey := os.Getenv(EnvGeminiAPIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	// Build a generation config for each configured agent model, apply its
	// sampling settings, and wrap it in the rate-limiting decorator.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey, values := range config.AgentModels {
		genConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(genConfig, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient: gc,
		AgentModels: agentModels,
	}, nil
}
