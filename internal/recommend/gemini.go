// internal/recommend/gemini.go
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/freshmart/retail-ops/backend-go/internal/config"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

const userFacingFailure = "Failed to get a recommendation from the AI. Please try again."

// GeminiClient calls the Generative Language REST API for order
// quantity recommendations.
type GeminiClient struct {
	endpoint string
	model    string
	apiKey   string
	http     *http.Client
}

func NewGeminiClient(cfg config.RecommendConfig) *GeminiClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string  `json:"responseMimeType"`
		Temperature      float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Recommend asks the model for an order quantity for the given
// product and period. Any transport, status or payload problem comes
// back as a *DependencyError.
func (c *GeminiClient) Recommend(ctx context.Context, product domain.Product, start, end time.Time) (*Recommendation, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(product, start, end)}}}},
	}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.Temperature = 0.5

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &DependencyError{
			Message: userFacingFailure,
			Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload),
		}
	}

	var parsed generateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: err}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &DependencyError{Message: userFacingFailure, Err: fmt.Errorf("empty response")}
	}

	var rec Recommendation
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return nil, &DependencyError{Message: userFacingFailure, Err: fmt.Errorf("invalid response format: %w", err)}
	}
	if rec.Reasoning == "" {
		return nil, &DependencyError{Message: userFacingFailure, Err: fmt.Errorf("invalid response format")}
	}

	return &rec, nil
}

func buildPrompt(product domain.Product, start, end time.Time) string {
	return fmt.Sprintf(`You are an expert grocery inventory management AI. Your goal is to minimize waste and prevent stockouts.
Analyze the following product data and provide an optimal order recommendation for the period from %[1]s to %[2]s.

Product Details:
- Name: %[3]s
- Current Stock: %[4]d %[5]s
- Average Spoilage Rate: %.1f%%
- Current System Forecast: %[7]d %[5]s

Consider the forecast period, the spoilage rate, the current stock level and the existing system forecast as a baseline.

Respond with a JSON object: {"recommended_quantity": <integer>, "reasoning": <string>}.`,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		product.Name, product.CurrentStock, product.Unit,
		product.SpoilageRate, product.ForecastRec)
}
