package genimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Result statuses. The caller surfaces these directly to the user; nothing
// here retries or interprets failure reasons further.
const (
	StatusSuccess        = "success"
	StatusManualFallback = "manual_fallback"
	StatusError          = "error"
)

// Result is the three-way outcome of an image generation request.
type Result struct {
	Status  string `json:"status,omitempty"`
	Image   string `json:"image,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Config for the generation client.
type Config struct {
	APIKey        string
	PrimaryModel  string
	FallbackModel string
	BaseURL       string  // override for tests
	RPM           float64 // requests per minute budget; guards the free tier
}

// Client talks to the generative-image REST API. It first tries the primary
// model's generateContent endpoint; on a rate limit it falls back to the
// flash model, and only when both are exhausted does it signal the manual
// copy-paste workflow.
type Client struct {
	apiKey        string
	baseURL       string
	primaryModel  string
	fallbackModel string
	httpClient    *http.Client
	limiter       *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PrimaryModel == "" {
		cfg.PrimaryModel = "gemini-3-pro-image-preview"
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = "gemini-2.5-flash-image"
	}
	if cfg.RPM <= 0 {
		cfg.RPM = 10
	}
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		primaryModel:  cfg.PrimaryModel,
		fallbackModel: cfg.FallbackModel,
		httpClient:    &http.Client{Timeout: 90 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(cfg.RPM/60.0), 1),
	}
}

// Status reports whether the API key is configured. The status endpoint
// deliberately avoids a live ping so idle dashboards do not burn quota.
func (c *Client) Status() (string, string) {
	if c.apiKey == "" {
		return "error", "API 키 미설정"
	}
	return "ready", "AI Ready (Key Configured)"
}

// Generate runs one prompt through the model chain and returns the three-way
// result. It never returns an error; every failure mode maps onto Result.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	if prompt == "" {
		return Result{Error: "Prompt is required"}
	}
	if c.apiKey == "" {
		log.Printf("[warn] genimage api key is not configured")
		return Result{Status: StatusManualFallback, Message: "API_KEY is not configured."}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{Error: err.Error()}
	}

	model := c.primaryModel
	attempt := c.tryGenerate(ctx, model, prompt)

	if !attempt.success && attempt.rateLimited {
		log.Printf("[info] genimage model=%s rate limited, falling back", model)
		model = c.fallbackModel
		attempt = c.tryGenerate(ctx, model, prompt)
	}

	switch {
	case attempt.success:
		return Result{Status: StatusSuccess, Image: attempt.image}
	case attempt.rateLimited:
		return Result{Status: StatusManualFallback, Message: "Rate limits exceeded for all available models."}
	default:
		errMsg := attempt.err
		if errMsg == "" {
			errMsg = "Failed to generate image"
		}
		log.Printf("[error] genimage model=%s generation failed: %s", model, errMsg)
		return Result{Error: errMsg}
	}
}

type attemptResult struct {
	success     bool
	rateLimited bool
	image       string
	err         string
}

func (c *Client) tryGenerate(ctx context.Context, model, prompt string) attemptResult {
	// generateContent first; experimental image models return inlineData.
	body := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]any{{"text": prompt}}},
		},
	}
	resp, err := c.post(ctx, fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey), body)
	if err != nil {
		return attemptResult{err: err.Error()}
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return attemptResult{rateLimited: true}
	}

	// Imagen-style models only answer on :predict.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		resp.Body.Close()
		predictBody := map[string]any{
			"instances":  []map[string]any{{"prompt": prompt}},
			"parameters": map[string]any{"sampleCount": 1},
		}
		predictResp, perr := c.post(ctx, fmt.Sprintf("%s/models/%s:predict?key=%s", c.baseURL, model, c.apiKey), predictBody)
		if perr != nil {
			return attemptResult{err: perr.Error()}
		}
		if predictResp.StatusCode == http.StatusTooManyRequests {
			predictResp.Body.Close()
			return attemptResult{rateLimited: true}
		}
		resp = predictResp
	}

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return attemptResult{err: err.Error()}
	}
	if resp.StatusCode >= 400 {
		return attemptResult{rateLimited: resp.StatusCode == http.StatusTooManyRequests, err: string(raw)}
	}
	return parseImage(raw)
}

func (c *Client) post(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	return resp, nil
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type apiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData      *inlineData `json:"inlineData"`
				InlineDataSnake *inlineData `json:"inline_data"`
			} `json:"parts"`
		} `json:"content"`
		Output string `json:"output"`
	} `json:"candidates"`
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
		Content            string `json:"content"`
	} `json:"predictions"`
}

// parseImage handles the three response shapes the API family produces:
// inlineData parts, Imagen predictions, and raw base64 payloads.
func parseImage(raw []byte) attemptResult {
	var data apiResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return attemptResult{err: err.Error()}
	}

	if len(data.Candidates) > 0 {
		for _, part := range data.Candidates[0].Content.Parts {
			inline := part.InlineData
			if inline == nil {
				inline = part.InlineDataSnake
			}
			if inline != nil && inline.Data != "" {
				return attemptResult{success: true, image: fmt.Sprintf("data:%s;base64,%s", inline.MimeType, inline.Data)}
			}
		}
	}

	if len(data.Predictions) > 0 && data.Predictions[0].BytesBase64Encoded != "" {
		mime := data.Predictions[0].MimeType
		if mime == "" {
			mime = "image/png"
		}
		return attemptResult{success: true, image: fmt.Sprintf("data:%s;base64,%s", mime, data.Predictions[0].BytesBase64Encoded)}
	}

	// Some model variants hand back a bare base64 string; the length check
	// filters out short text answers.
	var b64 string
	if len(data.Candidates) > 0 {
		b64 = data.Candidates[0].Output
	}
	if b64 == "" && len(data.Predictions) > 0 {
		b64 = data.Predictions[0].Content
	}
	if len(b64) > 1000 {
		return attemptResult{success: true, image: "data:image/png;base64," + b64}
	}

	return attemptResult{err: "No recognizable image data found in response."}
}
