// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders screening results as a tabular blob. The
// output is deterministic: identical results and questions produce
// byte-identical output.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// listSeparator joins multi-value cells (authors, topics, keywords).
const listSeparator = "; "

// CSVExporter writes screening results as CSV, one row per document
// with a fixed column block per research question.
type CSVExporter struct{}

// NewCSVExporter builds a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// WriteTable renders results into a CSV byte blob. Question columns are
// emitted in question order; a document missing an assessment for a
// question (which a completed run never produces) leaves that block empty.
func (e *CSVExporter) WriteTable(results []types.DocumentScreening, researchQuestions []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header(researchQuestions)); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, r := range results {
		if err := w.Write(row(r, researchQuestions)); err != nil {
			return nil, fmt.Errorf("writing row for %s: %w", r.DocumentID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func header(questions []string) []string {
	cols := []string{
		"document_id", "title", "authors", "year", "venue", "doi", "link",
		"must_read", "topics", "entities", "keywords",
	}
	for i := range questions {
		prefix := fmt.Sprintf("q%d", i+1)
		cols = append(cols,
			prefix+"_question",
			prefix+"_relevance_score",
			prefix+"_relevance_indicator",
			prefix+"_relevance_reasoning",
			prefix+"_contribution_score",
			prefix+"_contribution_indicator",
			prefix+"_contribution_reasoning",
		)
	}
	return cols
}

func row(r types.DocumentScreening, questions []string) []string {
	cols := []string{
		r.DocumentID,
		r.Title,
		strings.Join(r.Authors, listSeparator),
		strconv.Itoa(r.Year),
		r.Venue,
		r.DOI,
		r.Link,
		strconv.FormatBool(r.MustRead),
		strings.Join(r.Topics, listSeparator),
		strings.Join(r.Entities, listSeparator),
		strings.Join(r.Keywords, listSeparator),
	}

	for i, q := range questions {
		if i >= len(r.Assessments) {
			cols = append(cols, q, "", "", "", "", "", "")
			continue
		}
		a := r.Assessments[i]
		cols = append(cols,
			q,
			formatScore(a.RelevanceScore),
			strconv.FormatBool(a.RelevanceIndicator),
			a.RelevanceReasoning,
			formatScore(a.ContributionScore),
			strconv.FormatBool(a.ContributionIndicator),
			a.ContributionReasoning,
		)
	}
	return cols
}

// formatScore renders a score with two decimals for stable output.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
