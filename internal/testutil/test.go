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

// Package testutil provides helpers and mock data for the test suite: a
// cached test configuration and canned model replies in the shapes the
// normalizer must tolerate.
package testutil

import (
	"encoding/base64"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/yclip/yclip-backend/internal/cloud"
)

// StateManager caches the loaded configuration across a test run so each
// test does not re-read the TOML files.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. Cuts boilerplate in tests
// that only care about the happy path of a setup call.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// findConfigDir walks up from the working directory until it finds the
// configs directory. Package tests run from their own directory, so the
// relative path differs per package.
func findConfigDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "configs"
	}
	for {
		candidate := filepath.Join(dir, "configs")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "configs"
		}
		dir = parent
	}
}

// SetupOS points the configuration loader at the repository's configs
// directory and selects the "test" runtime so `.env.test.toml` overrides
// apply.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, findConfigDir())
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The TOML
// files are loaded once and cached for the rest of the run.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// GetFencedModelReply returns a model reply wrapped in a markdown code
// fence, the most common shape the model produces despite the JSON-only
// instruction.
func GetFencedModelReply() string {
	return "```json\n" + GetDictModelReply() + "\n```"
}

// GetDictModelReply returns a reply in the canonical object shape with a
// top-level "clips" key.
func GetDictModelReply() string {
	return `{
  "clips": [
    {
      "start": "00:00:05",
      "end": "00:00:19",
      "description": "Host reacts to the surprise reveal with a perfect deadpan stare."
    },
    {
      "start": "00:01:42",
      "end": "00:01:58",
      "description": "Rapid-fire montage of failed attempts set to the beat drop."
    }
  ]
}`
}

// GetBareArrayModelReply returns a reply where the model skipped the
// wrapping object and emitted the clip array directly.
func GetBareArrayModelReply() string {
	return `[
  {
    "start": "00:00:12",
    "end": "00:00:27",
    "description": "The dog steals the sandwich in one clean motion."
  }
]`
}

// GetUnexpectedShapeModelReply returns valid JSON in a shape the pipeline
// does not recognize as a clip list.
func GetUnexpectedShapeModelReply() string {
	return `{"summary": "a video about cooking", "rating": 4}`
}

// GetMalformedModelReply returns a reply that is not valid JSON at all.
func GetMalformedModelReply() string {
	return `Here are the clips I found: start at five seconds, end at nineteen.`
}

// GetTestVideoPayload returns a small base64-encoded payload usable as a
// video_base64 request field. The bytes start with an MP4 ftyp box so MIME
// sniffing identifies the container.
func GetTestVideoPayload() string {
	raw := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'm', 'p', '4', '1',
	}
	return base64.StdEncoding.EncodeToString(raw)
}
