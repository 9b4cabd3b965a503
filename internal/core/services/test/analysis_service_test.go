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

// Package services_test contains the test suite for the services package.
// This file tests service construction and the request validation paths of
// the AnalysisService, none of which reach the provider.
package services_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/model"
	"github.com/yclip/yclip-backend/internal/core/services"
	test "github.com/yclip/yclip-backend/internal/testutil"
	"github.com/zeebo/assert"
)

// newTestService builds an AnalysisService against the test configuration
// with a placeholder API key. Client construction is local; no provider
// call happens until a pipeline actually runs.
func newTestService(ctx context.Context, t *testing.T) *services.AnalysisService {
	t.Setenv(cloud.EnvGeminiAPIKey, "test-api-key")

	config := test.GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	test.HandleErr(err, t)

	svc, err := services.NewAnalysisService(config, cloudClients, "clip-editor")
	test.HandleErr(err, t)
	return svc
}

// TestNewAnalysisService verifies the service builds from the shipped
// configuration: the clip-editor agent model exists and the prompt template
// compiles.
func TestNewAnalysisService(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestService(ctx, t)
	assert.NotNil(t, svc)
}

// TestNewAnalysisServiceUnknownModel verifies that construction fails when
// the named agent model has no configuration section.
func TestNewAnalysisServiceUnknownModel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Setenv(cloud.EnvGeminiAPIKey, "test-api-key")
	config := test.GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	test.HandleErr(err, t)

	_, err = services.NewAnalysisService(config, cloudClients, "no-such-model")
	assert.Error(t, err)
}

// TestClientsRequireAPIKey verifies the hard requirement on the API key:
// with GEMINI_API_KEY unset, client construction refuses to proceed rather
// than falling back to any built-in credential.
func TestClientsRequireAPIKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Setenv(cloud.EnvGeminiAPIKey, "")
	_ = os.Unsetenv(cloud.EnvGeminiAPIKey)

	_, err := cloud.NewCloudServiceClients(ctx, test.GetConfig())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, cloud.ErrMissingAPIKey))
}

// TestAnalyzeMissingInput verifies that a request naming no video is
// rejected with the sentinel error before any pipeline work starts.
func TestAnalyzeMissingInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := newTestService(ctx, t)

	_, err := svc.Analyze(ctx, &model.AnalyzeRequest{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrMissingInput))
}
