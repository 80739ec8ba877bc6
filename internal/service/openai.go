package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"listinggen/internal/config"
	"listinggen/internal/utils"
)

var (
	// ErrProviderDisabled is returned when no API key is configured
	ErrProviderDisabled = errors.New("completion provider is not enabled (missing API key)")
	// ErrNoCandidates is returned when the provider answers without any choices
	ErrNoCandidates = errors.New("no completion returned by provider")
)

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// Model returns the configured model identifier
func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// TextCompletionRequest represents a legacy completions request
type TextCompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// TextCompletionResponse represents the completions API response
type TextCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Text         string `json:"text"`
		Index        int    `json:"index"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the chat API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// Usage reports token accounting
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Complete sends the prompt using the configured API mode
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if !c.config.Enabled {
		return nil, ErrProviderDisabled
	}

	// Use configured model if not specified
	if req.Model == "" {
		req.Model = c.config.Model
	}

	var result *CompletionResult
	var err error
	if c.config.Mode == config.ModeChat {
		result, err = c.chatCompletion(ctx, req)
	} else {
		result, err = c.textCompletion(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	log.Printf("[DEBUG] Completion from %s: %d candidates (tokens: %d)", result.Model, len(result.Candidates), result.TotalTokens)
	return result, nil
}

// textCompletion performs a POST {base}/completions request
func (c *OpenAIClient) textCompletion(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	body := TextCompletionRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var resp TextCompletionResponse
	if err := c.post(ctx, "/completions", body, &resp); err != nil {
		return nil, err
	}

	result := &CompletionResult{Model: resp.Model, TotalTokens: resp.Usage.TotalTokens}
	for _, choice := range resp.Choices {
		result.Candidates = append(result.Candidates, choice.Text)
	}
	return result, nil
}

// chatCompletion performs a POST {base}/chat/completions request with one user message
func (c *OpenAIClient) chatCompletion(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	body := ChatCompletionRequest{
		Model: req.Model,
		Messages: []ChatMessage{
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	var resp ChatCompletionResponse
	if err := c.post(ctx, "/chat/completions", body, &resp); err != nil {
		return nil, err
	}

	result := &CompletionResult{Model: resp.Model, TotalTokens: resp.Usage.TotalTokens}
	for _, choice := range resp.Choices {
		result.Candidates = append(result.Candidates, choice.Message.Content)
	}
	return result, nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, payload any, out any) error {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.APIBase, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, utils.TruncateString(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
