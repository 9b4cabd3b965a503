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

package main

import (
	"context"
	"log"
	"os"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/services"
)

// ClipAgentModelName is the logical name of the agent model configuration
// used for clip extraction. It must match a [agent_models.<name>] section in
// the TOML configuration.
const ClipAgentModelName = "clip-editor"

type StateManager struct {
	config          *cloud.Config
	cloud           *cloud.ServiceClients
	analysisService *services.AnalysisService
}

var state = &StateManager{}

// SetupOS points the configuration loader at the configs directory. The
// runtime environment (YCLIP_RUNTIME) is left to the caller; the loader
// defaults it to "local".
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	}
	return err
}

func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState builds the shared application dependencies: provider clients
// and the analysis service. The process refuses to start when the API key
// is absent or the prompt template does not parse.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to initialize provider clients: %v\n", err)
	}
	state.cloud = cloudClients

	analysisService, err := services.NewAnalysisService(config, cloudClients, ClipAgentModelName)
	if err != nil {
		log.Fatalf("failed to initialize analysis service: %v\n", err)
	}
	state.analysisService = analysisService
}
