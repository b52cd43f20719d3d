// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cognitive implements the engine's cognitive adapter: text
// generation through the Claude Messages API and embeddings through the
// Voyage API. Failures are returned as-is; the engine treats any
// adapter failure as fatal to the run and nothing is retried.
package cognitive

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/screening-engine/internal/httputil"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// API endpoints. Package-level vars for test substitution.
var (
	messagesURL   = "https://api.anthropic.com/v1/messages"
	embeddingsURL = "https://api.voyageai.com/v1/embeddings"
)

const defaultMaxTokens = 2048

// Client calls the generative AI APIs behind the CognitiveAdapter
// capability set.
type Client struct {
	cfg    types.CognitiveConfig
	client *http.Client
}

// NewClient builds a Client from config. A zero Timeout leaves the
// http.Client default in place.
func NewClient(cfg types.CognitiveConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// messagesRequest is the request body for the Claude Messages API.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

// message is a single message in the conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the response body from the Claude Messages API.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

// contentBlock is a content block in the response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GenerateText sends one prompt to the Claude Messages API and returns
// the concatenated text blocks of the response. systemPrompt may be empty.
func (c *Client) GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error) {
	maxTokens := c.cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqBody := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": "2023-06-01",
	}
	if c.cfg.UserAgent != "" {
		headers["User-Agent"] = c.cfg.UserAgent
	}

	var resp messagesResponse
	if err := httputil.PostJSON(ctx, c.client, messagesURL, headers, reqBody, &resp); err != nil {
		return "", fmt.Errorf("generating text: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("generating text: empty response content")
	}
	return text, nil
}

// embeddingsRequest is the request body for the Voyage embeddings API.
type embeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

// embeddingsResponse is the response body from the Voyage embeddings API.
type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// CreateEmbedding returns the embedding vector for one text.
func (c *Client) CreateEmbedding(ctx context.Context, text string) ([]float64, error) {
	reqBody := embeddingsRequest{
		Input: []string{text},
		Model: c.cfg.EmbeddingModel,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.EmbeddingAPIKey,
	}
	if c.cfg.UserAgent != "" {
		headers["User-Agent"] = c.cfg.UserAgent
	}

	var resp embeddingsResponse
	if err := httputil.PostJSON(ctx, c.client, embeddingsURL, headers, reqBody, &resp); err != nil {
		return nil, fmt.Errorf("creating embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("creating embedding: empty response data")
	}
	return resp.Data[0].Embedding, nil
}
