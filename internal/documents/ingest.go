// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package documents

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// IngestSummary holds counts from a corpus ingest run.
type IngestSummary struct {
	Ingested int
	Failed   int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Failed
}

// HasFailures reports whether any files failed to ingest.
func (s IngestSummary) HasFailures() bool {
	return s.Failed > 0
}

// Ingest reads per-document YAML metadata files from dir and upserts
// them for userID. The filename (minus extension) is the document ID
// when the file does not carry one. Individual file failures are
// reported and counted without aborting the run.
func (s *Store) Ingest(ctx context.Context, dir, userID string, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		var doc types.Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if doc.ID == "" {
			doc.ID = docID
		}
		doc.UserID = userID

		if err := s.UpsertDocument(ctx, doc); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", doc.ID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "ingested %s\n", doc.ID)
		summary.Ingested++
	}

	fmt.Fprintf(w, "\ningested: %d, failed: %d\n", summary.Ingested, summary.Failed)
	return summary, nil
}

// CorpusDir returns the default corpus directory under the store's data dir.
func (s *Store) CorpusDir() string {
	return filepath.Join(s.dataDir, corpusDir)
}
