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
// Generative AI provider. This file implements a decorator around the GenAI
// model handle that adds rate limiting and a bounded retry to content
// generation calls. The Gemini API enforces per-minute request quotas, and
// long-video analysis calls are expensive enough that a burst of analyze
// requests would otherwise trip them.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: Wraps a model name, its generation config,
//     and the shared `genai.Models` handle behind a token-bucket limiter.
//
// Functions:
//   - NewQuotaAwareModel: Constructor for the wrapper.
//   - GenerateContent: The decorated call that waits for quota and retries
//     transient failures.
package cloud

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// maxGenerateRetries bounds how many times a failed generation call is
// re-issued before the error is surfaced to the caller.
const maxGenerateRetries = 3

// QuotaAwareGenerativeAIModel is a decorator that adds rate limiting and
// retries to generation calls against a single configured model.
type QuotaAwareGenerativeAIModel struct {
	GenerateConfig *genai.GenerateContentConfig // Sampling parameters, system instruction, and output format.
	ModelName      string                       // The provider model identifier.
	ModelHandle    *genai.Models                // The shared models handle from the GenAI client.
	RateLimit      *rate.Limiter                // Token bucket controlling request frequency.
}

// NewQuotaAwareModel creates a new QuotaAwareGenerativeAIModel from a
// generation config and a rate limit expressed in requests per second.
//
// Inputs:
//   - config: The generation config to apply on every call.
//   - name: The provider model identifier (e.g. "models/gemini-2.0-flash").
//   - handle: The `genai.Models` handle from the initialized client.
//   - requestsPerSecond: Burst size for the token bucket; tokens replenish
//     once per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(config *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerateConfig: config,
		ModelName:      name,
		ModelHandle:    handle,
		RateLimit:      rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
	}
}

// GenerateContent issues a generation request through the rate limiter.
// `Wait` blocks until a token is available or the context is canceled, so a
// canceled request never consumes quota. Failed calls are retried with a
// short pause up to maxGenerateRetries times; the last error is returned
// once the budget is exhausted.
//
// Inputs:
//   - ctx: The context for the request. Cancellation aborts both the quota
//     wait and any pending retry.
//   - content: The multi-modal content of the prompt.
//
// Outputs:
//   - *genai.GenerateContentResponse: The model's response on success.
//   - error: The final error after all retries, or a context error.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= maxGenerateRetries; attempt++ {
		if err := q.RateLimit.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerateConfig)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// Give the service a moment to recover before re-issuing.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	return nil, fmt.Errorf("generation failed after %d retries: %w", maxGenerateRetries, lastErr)
}
