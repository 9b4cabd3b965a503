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

// Package api_test contains the HTTP-level test suite. This file provides
// the shared setup through TestMain: configuration, provider clients, the
// analysis service, and a gin engine with the routes registered, all built
// once and reused by every test in the package.
package api_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/yclip/yclip-backend/internal/api"
	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/services"
	test "github.com/yclip/yclip-backend/internal/testutil"
)

// Shared resources initialized once in TestMain.
var (
	ctx    context.Context
	config *cloud.Config
	engine *gin.Engine
)

const tName = "github.com/yclip/yclip-backend/tests/api"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

func TestMain(m *testing.M) {
	var cancel context.CancelFunc
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	// A placeholder key: client construction is local, and none of the
	// HTTP-level tests drive a request far enough to reach the provider.
	if err := os.Setenv(cloud.EnvGeminiAPIKey, "test-api-key"); err != nil {
		log.Fatalf("failed to set test API key: %v\n", err)
	}

	config = test.GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to initialize provider clients: %v\n", err)
	}

	analysisService, err := services.NewAnalysisService(config, cloudClients, "clip-editor")
	if err != nil {
		log.Fatalf("failed to initialize analysis service: %v\n", err)
	}

	gin.SetMode(gin.TestMode)
	engine = gin.New()
	api.NewAnalysisHandlers(config, analysisService).RegisterRoutes(engine)

	os.Exit(m.Run())
}
