package cognitive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func testConfig() types.CognitiveConfig {
	cfg := types.CognitiveConfig{
		EmbeddingModel:  "voyage-3",
		EmbeddingAPIKey: "voyage-key",
	}
	cfg.Model = "claude-sonnet-4-5-20250929"
	cfg.APIKey = "anthropic-key"
	cfg.MaxTokens = 1024
	cfg.Timeout = 5 * time.Second
	return cfg
}

// withMessagesServer points the messages endpoint at a test server for
// the duration of the test.
func withMessagesServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	orig := messagesURL
	messagesURL = srv.URL
	t.Cleanup(func() {
		messagesURL = orig
		srv.Close()
	})
}

func withEmbeddingsServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	orig := embeddingsURL
	embeddingsURL = srv.URL
	t.Cleanup(func() {
		embeddingsURL = orig
		srv.Close()
	})
}

func TestGenerateText(t *testing.T) {
	var gotReq messagesRequest
	var gotHeaders http.Header
	withMessagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{
			{Type: "text", Text: "Score: 0.8\n"},
			{Type: "text", Text: "Reasoning: on topic"},
		}})
	})

	c := NewClient(testConfig())
	got, err := c.GenerateText(context.Background(), "assess this", "you are a screener")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Score: 0.8\nReasoning: on topic" {
		t.Errorf("text = %q", got)
	}

	if gotReq.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 1024 {
		t.Errorf("max_tokens = %d", gotReq.MaxTokens)
	}
	if gotReq.System != "you are a screener" {
		t.Errorf("system = %q", gotReq.System)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" || gotReq.Messages[0].Content != "assess this" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if gotHeaders.Get("x-api-key") != "anthropic-key" {
		t.Errorf("x-api-key = %q", gotHeaders.Get("x-api-key"))
	}
	if gotHeaders.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotHeaders.Get("anthropic-version"))
	}
}

func TestGenerateTextDefaultMaxTokens(t *testing.T) {
	var gotReq messagesRequest
	withMessagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{
			{Type: "text", Text: "ok"},
		}})
	})

	cfg := testConfig()
	cfg.MaxTokens = 0
	c := NewClient(cfg)
	if _, err := c.GenerateText(context.Background(), "p", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.MaxTokens != defaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", gotReq.MaxTokens, defaultMaxTokens)
	}
}

func TestGenerateTextSkipsNonTextBlocks(t *testing.T) {
	withMessagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{Content: []contentBlock{
			{Type: "thinking", Text: "internal"},
			{Type: "text", Text: "visible"},
		}})
	})

	c := NewClient(testConfig())
	got, err := c.GenerateText(context.Background(), "p", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "visible" {
		t.Errorf("text = %q, want only the text block", got)
	}
}

func TestGenerateTextEmptyContent(t *testing.T) {
	withMessagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{})
	})

	c := NewClient(testConfig())
	_, err := c.GenerateText(context.Background(), "p", "")
	if err == nil || !strings.Contains(err.Error(), "empty response") {
		t.Fatalf("error = %v, want empty-response error", err)
	}
}

func TestGenerateTextAPIError(t *testing.T) {
	withMessagesServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusTooManyRequests)
	})

	c := NewClient(testConfig())
	_, err := c.GenerateText(context.Background(), "p", "")
	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status code carried", err)
	}
}

func TestCreateEmbedding(t *testing.T) {
	var gotReq embeddingsRequest
	var gotAuth string
	withEmbeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float64{0.1, 0.2, 0.3}},
			},
		})
	})

	c := NewClient(testConfig())
	got, err := c.CreateEmbedding(context.Background(), "some abstract")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 0.1 || got[2] != 0.3 {
		t.Errorf("embedding = %v", got)
	}
	if gotReq.Model != "voyage-3" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Input) != 1 || gotReq.Input[0] != "some abstract" {
		t.Errorf("input = %v", gotReq.Input)
	}
	if gotAuth != "Bearer voyage-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestCreateEmbeddingEmptyData(t *testing.T) {
	withEmbeddingsServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	c := NewClient(testConfig())
	_, err := c.CreateEmbedding(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "empty response data") {
		t.Fatalf("error = %v, want empty-data error", err)
	}
}
