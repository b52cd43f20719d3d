// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semantics derives topics, entities, and keywords from a
// document abstract through a text-generation backend.
package semantics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// TextGenerator abstracts the generation capability so tests can supply
// a mock.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// extractionPromptTmpl instructs the model to return topic, entity, and
// keyword lists as a bare JSON object.
var extractionPromptTmpl = template.Must(template.New("semantics").Parse(`Analyze the following academic abstract and extract its semantic content.

Identify:
- topics: the research topics and themes the abstract discusses
- entities: named methods, systems, datasets, organizations, or other proper entities
- keywords: concise index terms a reader would search for

Respond with a JSON object containing "topics", "entities", and "keywords" arrays of strings. Do not include any text outside the JSON object.

Example response:
{"topics": ["digital transformation", "organizational change"], "entities": ["SAP", "TOGAF"], "keywords": ["enterprise-architecture", "adoption"]}

Abstract:
{{.Abstract}}
`))

// Extractor implements semantic extraction over a TextGenerator.
type Extractor struct {
	Backend TextGenerator
}

// NewExtractor builds an Extractor over the given backend.
func NewExtractor(backend TextGenerator) *Extractor {
	return &Extractor{Backend: backend}
}

// ExtractSemantics runs one generation call over the abstract and
// parses the JSON response. A malformed response is an error: semantic
// extraction has no degraded mode and its failure is fatal to the run.
func (e *Extractor) ExtractSemantics(ctx context.Context, abstract string) (types.Semantics, error) {
	var buf bytes.Buffer
	if err := extractionPromptTmpl.Execute(&buf, struct{ Abstract string }{Abstract: abstract}); err != nil {
		return types.Semantics{}, fmt.Errorf("rendering prompt: %w", err)
	}

	raw, err := e.Backend.GenerateText(ctx, buf.String(), "")
	if err != nil {
		return types.Semantics{}, fmt.Errorf("extracting semantics: %w", err)
	}

	var sem types.Semantics
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &sem); err != nil {
		return types.Semantics{}, fmt.Errorf("parsing semantics response: %w", err)
	}
	return sem, nil
}

// stripCodeFence removes a surrounding Markdown code fence, with or
// without a language tag, so fenced JSON responses still parse.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
