package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "screening-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the response length of a single generation call (default 2048).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// CognitiveConfig holds settings for the cognitive adapter.
type CognitiveConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// EmbeddingModel is the embedding model identifier (e.g. "voyage-3").
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`

	// EmbeddingAPIKey is the authentication key for the embeddings API.
	EmbeddingAPIKey string `json:"embedding_api_key,omitempty" yaml:"embedding_api_key,omitempty"`
}

// ScreeningConfig holds settings for the systematic screening process.
type ScreeningConfig struct {
	// RelevanceThreshold is the default must-read relevance threshold
	// used when a run does not supply one (default 0.7).
	RelevanceThreshold float64 `json:"relevance_threshold" yaml:"relevance_threshold"`

	// ContributionThreshold is the default must-read contribution
	// threshold used when a run does not supply one (default 0.7).
	ContributionThreshold float64 `json:"contribution_threshold" yaml:"contribution_threshold"`
}

// DocumentStoreConfig holds settings for the document and journey store.
type DocumentStoreConfig struct {
	// DataDir is the base directory for engine data (contains the
	// SQLite database and the corpus/ ingest directory).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// EngineConfig groups all stage configurations for the screening engine.
type EngineConfig struct {
	Cognitive CognitiveConfig     `json:"cognitive" yaml:"cognitive"`
	Screening ScreeningConfig     `json:"screening" yaml:"screening"`
	Documents DocumentStoreConfig `json:"documents" yaml:"documents"`
}
