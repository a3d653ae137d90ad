// Package backend is the HTTP boundary to the orchestration service that
// runs the actual multi-model analysis.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ultrai/ultrai/internal/logger"
	"github.com/ultrai/ultrai/internal/models"
)

// AnalyzeRequest is the submission payload derived from the wizard.
type AnalyzeRequest struct {
	Prompt       string   `json:"prompt"`
	Models       []string `json:"models"`
	Pattern      string   `json:"pattern"`
	OutputFormat string   `json:"output_format"`
}

// AnalyzeResponse is the successful analysis result.
type AnalyzeResponse struct {
	UltraResponse  string   `json:"ultra_response"`
	ModelsUsed     []string `json:"models_used"`
	ProcessingTime float64  `json:"processing_time"`
	PatternUsed    string   `json:"pattern_used"`
}

// APIError is a backend rejection. Details carries structured diagnostics
// (e.g. missing-provider info) that the UI renders verbatim when present.
type APIError struct {
	Status  int
	Message string `json:"message"`
	Details string `json:"error_details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// modelEntry is the wire shape of one model catalog row.
type modelEntry struct {
	Name            string  `json:"name"`
	Provider        string  `json:"provider"`
	CostPer1KTokens float64 `json:"cost_per_1k_tokens"`
}

// Client talks to the orchestration backend.
type Client struct {
	baseURL string
	// analyzeClient has no timeout: the analysis runs until the backend
	// resolves or rejects, and the simulator's ETA is advisory only.
	analyzeClient *http.Client
	catalogClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		analyzeClient: &http.Client{},
		catalogClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Analyze submits the wizard payload and blocks until the backend resolves
// or rejects. The context is the only cancellation path.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding analyze request: %w", err)
	}

	logger.Info("Submitting analysis: %d models, pattern=%s", len(req.Models), req.Pattern)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.analyzeClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	var out AnalyzeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding analyze response: %w", err)
	}

	logger.Info("Analysis complete in %.1fs using %d models", out.ProcessingTime, len(out.ModelsUsed))
	return &out, nil
}

// Models fetches the available model catalog with provider and unit cost.
func (c *Client) Models(ctx context.Context) ([]models.Model, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/available-models", nil)
	if err != nil {
		return nil, fmt.Errorf("building models request: %w", err)
	}

	resp, err := c.catalogClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("models request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading models response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, data)
	}

	var wire struct {
		AvailableModels []modelEntry `json:"available_models"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding models response: %w", err)
	}

	list := make([]models.Model, 0, len(wire.AvailableModels))
	for _, entry := range wire.AvailableModels {
		list = append(list, models.Model{
			ID:        entry.Name,
			Provider:  entry.Provider,
			CostPer1K: entry.CostPer1KTokens,
		})
	}

	logger.Debug("Fetched %d available models", len(list))
	return list, nil
}

// parseAPIError decodes a backend error body, falling back to the raw body
// when it is not the structured shape.
func parseAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg}
	}
	return apiErr
}
