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

// Package api contains the HTTP handlers for the clip analysis server.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yclip/yclip-backend/internal/cloud"
	"github.com/yclip/yclip-backend/internal/core/model"
	"github.com/yclip/yclip-backend/internal/core/services"
)

// AnalysisHandlers wires the analysis service to the HTTP surface. Error
// bodies always use a single "detail" field so clients have one place to
// look for a human-readable reason.
type AnalysisHandlers struct {
	Config  *cloud.Config
	Service *services.AnalysisService
}

// NewAnalysisHandlers creates the handler set for the analysis endpoints.
func NewAnalysisHandlers(config *cloud.Config, service *services.AnalysisService) *AnalysisHandlers {
	return &AnalysisHandlers{Config: config, Service: service}
}

// RegisterRoutes attaches the handler set to the given engine.
func (h *AnalysisHandlers) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", h.HealthCheck)
	engine.POST("/api/analyze", h.Analyze)
}

// HealthCheck reports that the service is up, along with its version.
func (h *AnalysisHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "YClip Backend API is running",
		"version": h.Config.Application.Version,
	})
}

// Analyze accepts a video by URL or embedded base64 payload, runs the clip
// analysis pipeline, and returns the extracted clip list.
//
// Responses:
//   - 200 with the clip list on success.
//   - 400 with a detail message when the body is malformed or names no video.
//   - 500 with a detail message when the pipeline fails.
func (h *AnalysisHandlers) Analyze(c *gin.Context) {
	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.Service.Analyze(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": services.ErrMissingInput.Error()})
			return
		}
		slog.ErrorContext(c.Request.Context(), "clip analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
