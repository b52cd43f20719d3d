// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// DocumentLookup resolves stored documents by ID, scoped to their owner.
type DocumentLookup interface {
	DocumentsByIDs(ctx context.Context, ids []string, userID string) ([]types.Document, error)
}

// JourneyLookup answers whether a journey exists before a run starts.
type JourneyLookup interface {
	JourneyExists(ctx context.Context, journeyID string) (bool, error)
}

// CognitiveAdapter is the LLM capability set a process may consume.
type CognitiveAdapter interface {
	// GenerateText returns the model's text response for a prompt.
	// systemPrompt may be empty.
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)

	// CreateEmbedding returns an embedding vector for the given text.
	CreateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// SemanticExtractor derives topics, entities, and keywords from an abstract.
type SemanticExtractor interface {
	ExtractSemantics(ctx context.Context, abstract string) (types.Semantics, error)
}

// TableExporter renders screening results as a tabular byte blob.
type TableExporter interface {
	WriteTable(results []types.DocumentScreening, researchQuestions []string) ([]byte, error)
}

// Collaborators bundles the services a process pulls through its
// execution context. Fields are wired by explicit construction; a
// process never resolves a collaborator dynamically.
type Collaborators struct {
	Documents DocumentLookup
	Cognitive CognitiveAdapter
	Semantics SemanticExtractor
	Exporter  TableExporter
}

// ExecContext is the per-invocation value bundle handed to a process.
// It is owned exclusively by the invocation and discarded after the
// process returns; the engine never reuses one across runs.
type ExecContext struct {
	// ExecutionID identifies this run.
	ExecutionID string

	// UserID is the acting user; document lookups are scoped to it.
	UserID string

	// JourneyID is the journey the run belongs to.
	JourneyID string

	// ScopeID optionally narrows the run to a sub-scope of the journey.
	ScopeID string

	// Params carries the caller-supplied parameters keyed by name.
	Params map[string]any

	Collaborators

	// Progress receives line-oriented progress and warning output.
	Progress io.Writer
}

// StringParam returns the named parameter rendered as a string, and
// whether the key is present at all.
func (ec *ExecContext) StringParam(key string) (string, bool) {
	v, ok := ec.Params[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case nil:
		return "", true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
