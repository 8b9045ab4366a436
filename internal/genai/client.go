// Package genai is a client for OpenAI-compatible chat completion APIs,
// used for translating and summarizing document text.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls an OpenAI-compatible API for translation and summarization.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	stats      *StatsRegistry
}

// NewClient creates a Client for the given API endpoint. stats may be nil.
func NewClient(apiURL, apiKey string, stats *StatsRegistry) *Client {
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		stats: stats,
	}
}

// buildURL joins the base URL and an endpoint path. Users paste base URLs in
// several shapes (with or without /v1, sometimes the full /chat/completions
// path), so this normalizes rather than blindly concatenating.
func (c *Client) buildURL(endpoint string) string {
	endpoint = strings.TrimLeft(endpoint, "/")

	if endpoint == "chat/completions" {
		if strings.Contains(c.baseURL, "/chat/completions") {
			return c.baseURL
		}
		return c.baseURL + "/" + endpoint
	}

	if endpoint == "models" {
		if strings.Contains(c.baseURL, "/chat/completions") {
			return strings.Replace(c.baseURL, "/chat/completions", "/models", 1)
		}
		return c.baseURL + "/models"
	}

	return c.baseURL + "/" + endpoint
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// chatCompletion sends a single-turn chat request and returns the reply text.
func (c *Client) chatCompletion(ctx context.Context, op, model, prompt string, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("chat/completions"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat api: %w", err)
	}
	defer resp.Body.Close()

	if c.stats != nil {
		c.stats.Record(op, time.Since(start).Milliseconds())
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("chat api error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat api")
	}

	return strings.TrimSpace(apiResp.Choices[0].Message.Content), nil
}

// Translate converts text from one language to another.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang, model string) (string, error) {
	prompt := BuildTranslatePrompt(text, sourceLang, targetLang)
	out, err := c.chatCompletion(ctx, "translate", model, prompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	return out, nil
}

// SummarizeOptions controls how summaries are produced.
type SummarizeOptions struct {
	NumSlides              int
	AdditionalInstructions string
	TargetLang             string
}

// Summarize condenses text into slide-ready markdown.
func (c *Client) Summarize(ctx context.Context, text, model string, opts SummarizeOptions) (string, error) {
	if opts.NumSlides < 1 {
		opts.NumSlides = 1
	}
	if opts.TargetLang == "" {
		opts.TargetLang = "English"
	}
	prompt := BuildSummarizePrompt(text, opts)
	out, err := c.chatCompletion(ctx, "summarize", model, prompt, 0.5)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
