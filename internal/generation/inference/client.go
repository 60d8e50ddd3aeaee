package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL targets the Fireworks-hosted OpenAI-compatible API.
	DefaultBaseURL     = "https://api.fireworks.ai/inference"
	DefaultModel       = "Qwen/Qwen3-235B-A22B"
	DefaultVisionModel = "Qwen/Qwen2.5-VL-72B-Instruct"

	// Model responses can be very slow; mirror the generous upstream
	// timeout the service has always used.
	requestTimeout = 120 * time.Second
)

// Client talks to an OpenAI-style chat-completions endpoint. A small
// client-side rate limiter bounds the outbound call rate so a burst of
// handlers cannot hammer the provider.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	visionModel string
	http        *http.Client
	limiter     *rate.Limiter
}

type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.VisionModel == "" {
		opts.VisionModel = DefaultVisionModel
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		visionModel: opts.VisionModel,
		http:        &http.Client{Timeout: requestTimeout},
		limiter:     rate.NewLimiter(rate.Limit(2), 4),
	}
}

func (c *Client) Model() string       { return c.model }
func (c *Client) VisionModel() string { return c.visionModel }

// Message is one chat turn. Content is either a plain string or a list
// of ContentPart for multimodal turns.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Text builds a plain text message.
func Text(role, content string) Message {
	return Message{Role: role, Content: content}
}

// TextWithImage builds a user message carrying both an instruction and
// an inline base64 image (data URL form).
func TextWithImage(role, text, imageDataURL string) Message {
	return Message{
		Role: role,
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageDataURL}},
		},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completions call and returns the first
// choice's text. An empty model falls back to the configured text
// model.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, maxTokens int, temperature float64) (string, error) {
	if model == "" {
		model = c.model
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("inference rate limit: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	var out chatResponse
	if jsonErr := json.Unmarshal(data, &out); jsonErr != nil && resp.StatusCode < 400 {
		return "", fmt.Errorf("decode inference response: %w", jsonErr)
	}

	if resp.StatusCode >= 400 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("inference error (status %d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("inference error (status %d)", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("inference returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
