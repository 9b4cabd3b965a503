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

// Package model defines the data structures for the application. This file
// provides factory functions for hardcoded example instances used for
// few-shot prompting: embedding a concrete example of the desired JSON
// output in the prompt keeps the model's replies consistent and parsable.
package model

// GetExampleClipList creates a sample ClipList used as the few-shot example
// in the clip extraction prompt. It shows the model the exact JSON structure
// expected back, including the HH:MM:SS timestamp format and the kind of
// rationale wanted in the description.
//
// Outputs:
//   - *ClipList: A pointer to a hardcoded ClipList object.
func GetExampleClipList() *ClipList {
	return &ClipList{
		Clips: []Clip{
			{
				Start:       "00:04:12",
				End:         "00:04:41",
				Description: "Speaker flatly declares that networking is a waste of time for most people; the contrarian opening line lands in the first two seconds and triggers status anxiety.",
			},
			{
				Start:       "00:17:03",
				End:         "00:17:29",
				Description: "Visible frustration while recounting being fired; the emotional spike plus the vulnerable payoff makes the clip rewatchable.",
			},
		},
	}
}
