package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"financial-hub/internal/config"
	"github.com/sirupsen/logrus"
)

// Client is a text-completion service: a system string and a user prompt
// in, a single text block out.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// AnthropicClient calls the Anthropic messages API
type AnthropicClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     *logrus.Logger
}

// NewAnthropicClient initializes a new Anthropic client
func NewAnthropicClient(cfg *config.Config, log *logrus.Logger) *AnthropicClient {
	return &AnthropicClient{
		baseURL: cfg.AnthropicURL,
		apiKey:  cfg.AnthropicAPIKey,
		model:   cfg.AnthropicModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Complete sends a single-turn request and returns the text of the reply
func (c *AnthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: 4096,
		System:    system,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("api error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("empty response content")
	}

	c.log.Debugf("LLM response: %d content blocks, %d bytes", len(parsed.Content), len(body))
	return parsed.Content[0].Text, nil
}
