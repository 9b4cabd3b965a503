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

// Package model defines the core data structures for the application. All of
// them are transient: the relay persists nothing, so these objects only live
// for the duration of a single analyze request as data moves between the
// HTTP layer, the workflow commands, and the generative model.
package model

// ContentSource identifies which transport an analyze request selected.
type ContentSource int

const (
	// ContentSourceNone means the request carried neither a URL nor a payload.
	ContentSourceNone ContentSource = iota
	// ContentSourceURL means the request carried a remote video URL.
	ContentSourceURL
	// ContentSourcePayload means the request carried an embedded base64 payload.
	ContentSourcePayload
)

// AnalyzeRequest is the body of POST /api/analyze. Exactly one of the two
// fields is expected; when both are populated the URL wins.
type AnalyzeRequest struct {
	VideoURL    string `json:"video_url,omitempty"`    // A remote video reference, e.g. a YouTube URL.
	VideoBase64 string `json:"video_base64,omitempty"` // Base64-encoded raw video bytes.
}

// Source returns the transport this request selects. The URL branch is
// checked first, which makes the url-over-payload precedence an explicit
// contract rather than incidental ordering.
func (r *AnalyzeRequest) Source() ContentSource {
	switch {
	case r.VideoURL != "":
		return ContentSourceURL
	case r.VideoBase64 != "":
		return ContentSourcePayload
	default:
		return ContentSourceNone
	}
}

// Clip is a proposed short-form excerpt of the source video, as returned by
// the model. Timestamps are free-form "HH:MM:SS" strings; the service does
// not validate ordering or duration, those constraints are requested of the
// model through the prompt only.
type Clip struct {
	Start       string `json:"start"`       // The start timestamp, "HH:MM:SS".
	End         string `json:"end"`         // The end timestamp, "HH:MM:SS".
	Description string `json:"description"` // Why this moment stops scrolling.
}

// AnalyzeResponse is the body of a successful analyze call: the ordered clip
// list exactly as the model returned it.
type AnalyzeResponse struct {
	Clips []Clip `json:"clips"`
}

// ClipList mirrors the object shape the prompt asks the model for. It exists
// separately from AnalyzeResponse so the normalizer can speak about "what
// the model said" without implying an HTTP contract.
type ClipList struct {
	Clips []Clip `json:"clips"`
}
