// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screening implements the systematic screening process: a
// dual-phase relevance/contribution assessment of a document corpus
// against a set of research questions.
//
// A run is strictly sequential. For D documents and Q questions it
// issues D semantic-extraction calls plus D*Q*2 assessment calls, one
// at a time, and aggregates the decisions into an exportable summary.
package screening

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/screening-engine/internal/engine"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// ProcessID is the registry identifier of the screening process.
const ProcessID = "systematic_screening"

// Parameter map keys.
const (
	paramResearchQuestions     = "research_questions"
	paramDocumentIDs           = "document_ids"
	paramRelevanceThreshold    = "relevance_threshold"
	paramContributionThreshold = "contribution_threshold"
)

// Caller-facing defaults for the must-read thresholds.
const (
	defaultRelevanceThreshold    = 0.7
	defaultContributionThreshold = 0.7
)

// indicatorCutoff drives the per-assessment indicator booleans. It is a
// fixed constant, independent of the caller-supplied must-read
// thresholds, and the two must not be conflated.
const indicatorCutoff = 0.7

// Process is the systematic screening implementation of the process
// contract.
type Process struct {
	defaults types.ScreeningConfig
}

// New builds the screening process. Zero config thresholds fall back to
// the package defaults.
func New(cfg types.ScreeningConfig) *Process {
	if cfg.RelevanceThreshold <= 0 {
		cfg.RelevanceThreshold = defaultRelevanceThreshold
	}
	if cfg.ContributionThreshold <= 0 {
		cfg.ContributionThreshold = defaultContributionThreshold
	}
	return &Process{defaults: cfg}
}

func (p *Process) ID() string   { return ProcessID }
func (p *Process) Name() string { return "Systematic Screening" }

func (p *Process) Description() string {
	return "Screens a document corpus against research questions with dual relevance and contribution assessment, marking must-read documents."
}

func (p *Process) Category() string { return "document-analysis" }

// InputSchema declares the screening parameters.
func (p *Process) InputSchema() types.InputSchema {
	return types.InputSchema{
		Fields: []types.InputField{
			{
				Name:     paramResearchQuestions,
				Label:    "Research questions",
				Kind:     types.InputText,
				Required: true,
			},
			{
				Name:     paramDocumentIDs,
				Label:    "Documents to screen",
				Kind:     types.InputDocumentList,
				Required: true,
			},
			{
				Name:    paramRelevanceThreshold,
				Label:   "Relevance threshold",
				Kind:    types.InputNumber,
				Default: "0.7",
			},
			{
				Name:    paramContributionThreshold,
				Label:   "Contribution threshold",
				Kind:    types.InputNumber,
				Default: "0.7",
			},
		},
	}
}

// Capabilities reports batch support and the cognitive-service requirement.
func (p *Process) Capabilities() types.Capabilities {
	return types.Capabilities{
		SupportsBatch:     true,
		SupportsStreaming: false,
		RequiresCognitive: true,
	}
}

// Validate checks that the required parameter keys are present. Value
// shape is not inspected here; parsing failures surface during Execute.
func (p *Process) Validate(ec *engine.ExecContext) error {
	for _, name := range p.InputSchema().Required() {
		if _, ok := ec.Params[name]; !ok {
			return &engine.ValidationError{
				Message: fmt.Sprintf("required parameter %q is missing", name),
			}
		}
	}
	return nil
}

// Execute runs the screening pipeline. Expected input failures return a
// failed Result with a human-readable message; any collaborator error
// aborts the whole run and discards all accumulated work. Cancellation
// is observed only at the top of the per-document loop: a cancelled run
// returns a successful partial result.
func (p *Process) Execute(ctx context.Context, ec *engine.ExecContext) types.Result {
	questionsText, _ := ec.StringParam(paramResearchQuestions)
	questions := parseQuestions(questionsText)
	if len(questions) == 0 {
		return types.Failure("No research questions provided")
	}

	ids, err := parseDocumentIDs(ec.Params[paramDocumentIDs])
	if err != nil {
		return types.Failure("%v", err)
	}
	if len(ids) == 0 {
		return types.Failure("No documents selected")
	}

	relRaw, relPresent := ec.StringParam(paramRelevanceThreshold)
	relThreshold, err := parseThreshold(relRaw, relPresent, p.defaults.RelevanceThreshold, paramRelevanceThreshold)
	if err != nil {
		return types.Failure("%v", err)
	}
	contribRaw, contribPresent := ec.StringParam(paramContributionThreshold)
	contribThreshold, err := parseThreshold(contribRaw, contribPresent, p.defaults.ContributionThreshold, paramContributionThreshold)
	if err != nil {
		return types.Failure("%v", err)
	}

	docs, err := ec.Documents.DocumentsByIDs(ctx, ids, ec.UserID)
	if err != nil {
		return types.Failure("fetching documents: %v", err)
	}
	if len(docs) == 0 {
		return types.Failure("No documents found for the selected ids")
	}

	var (
		results   []types.DocumentScreening
		skipped   int
		cancelled bool
	)

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			fmt.Fprintf(ec.Progress, "cancelled after %d document(s)\n", len(results))
			break
		}

		if strings.TrimSpace(doc.Metadata.Abstract) == "" {
			fmt.Fprintf(ec.Progress, "skipped %s: no abstract\n", doc.ID)
			skipped++
			continue
		}

		// Phase 1: semantic extraction over the abstract.
		sem, err := ec.Semantics.ExtractSemantics(ctx, doc.Metadata.Abstract)
		if err != nil {
			return types.Failure("extracting semantics for %s: %v", doc.ID, err)
		}

		result := types.DocumentScreening{
			DocumentID: doc.ID,
			Title:      doc.Metadata.Title,
			Abstract:   doc.Metadata.Abstract,
			Authors:    doc.Metadata.Authors,
			Year:       doc.Metadata.Year,
			Venue:      doc.Metadata.Venue,
			DOI:        doc.Metadata.DOI,
			Link:       doc.Metadata.Link,
			Topics:     sem.Topics,
			Entities:   sem.Entities,
			Keywords:   mergeKeywords(sem.Keywords, doc.Metadata.Keywords),
		}

		// Phase 2: dual assessment, one pair of calls per question.
		for qi, question := range questions {
			rel, err := p.assess(ctx, ec, relevancePromptTmpl, question, doc)
			if err != nil {
				return types.Failure("%v", err)
			}
			contrib, err := p.assess(ctx, ec, contributionPromptTmpl, question, doc)
			if err != nil {
				return types.Failure("%v", err)
			}

			result.Assessments = append(result.Assessments, types.QuestionAssessment{
				QuestionIndex:         qi,
				RelevanceScore:        rel.score,
				ContributionScore:     contrib.score,
				RelevanceIndicator:    rel.score >= indicatorCutoff,
				ContributionIndicator: contrib.score >= indicatorCutoff,
				RelevanceReasoning:    rel.reasoning,
				ContributionReasoning: contrib.reasoning,
			})
		}

		// Must-read: both thresholds met on at least one question.
		for _, a := range result.Assessments {
			if a.RelevanceScore >= relThreshold && a.ContributionScore >= contribThreshold {
				result.MustRead = true
				break
			}
		}

		results = append(results, result)
		fmt.Fprintf(ec.Progress, "screened %s (%d question(s), must_read=%v)\n",
			doc.ID, len(questions), result.MustRead)
	}

	blob, err := ec.Exporter.WriteTable(results, questions)
	if err != nil {
		return types.Failure("writing export table: %v", err)
	}

	summary := buildSummary(results, questions, len(docs), skipped, relThreshold, contribThreshold, cancelled)
	summary.ExportBase64 = base64.StdEncoding.EncodeToString(blob)

	return types.Result{Success: true, Data: summaryData(summary)}
}

// assess renders one prompt, issues one generation call, and parses the
// response. Protocol mismatches degrade to the parse fallback with a
// warning; only adapter errors propagate.
func (p *Process) assess(ctx context.Context, ec *engine.ExecContext, tmpl *template.Template, question string, doc types.Document) (assessment, error) {
	prompt, err := renderPrompt(tmpl, question, doc.Metadata.Title, doc.Metadata.Abstract)
	if err != nil {
		return assessment{}, err
	}

	raw, err := ec.Cognitive.GenerateText(ctx, prompt, systemPrompt)
	if err != nil {
		return assessment{}, fmt.Errorf("%s assessment for %s: %w", tmpl.Name(), doc.ID, err)
	}

	a := parseAssessment(raw)
	if a.fallback {
		fmt.Fprintf(ec.Progress, "warning: %s response for %s did not match the score protocol, using fallback\n",
			tmpl.Name(), doc.ID)
	}
	return a, nil
}

// buildSummary aggregates per-document results into the batch summary.
func buildSummary(results []types.DocumentScreening, questions []string, total, skipped int, relThreshold, contribThreshold float64, cancelled bool) types.ScreeningSummary {
	mustRead := 0
	projections := make([]types.DocumentProjection, len(results))
	for i, r := range results {
		if r.MustRead {
			mustRead++
		}
		projections[i] = types.DocumentProjection{
			ID:          r.DocumentID,
			Title:       r.Title,
			Authors:     r.Authors,
			Year:        r.Year,
			MustRead:    r.MustRead,
			Topics:      r.Topics,
			Entities:    r.Entities,
			Keywords:    r.Keywords,
			Assessments: r.Assessments,
		}
	}

	percentage := 0.0
	if len(results) > 0 {
		percentage = float64(mustRead) / float64(len(results)) * 100
	}

	return types.ScreeningSummary{
		TotalDocuments:        total,
		ProcessedDocuments:    len(results),
		SkippedDocuments:      skipped,
		MustReadCount:         mustRead,
		MustReadPercentage:    percentage,
		ResearchQuestions:     questions,
		RelevanceThreshold:    relThreshold,
		ContributionThreshold: contribThreshold,
		Cancelled:             cancelled,
		Documents:             projections,
	}
}

// summaryData flattens the summary into the Result data map.
func summaryData(s types.ScreeningSummary) map[string]any {
	return map[string]any{
		"total_documents":        s.TotalDocuments,
		"processed_documents":    s.ProcessedDocuments,
		"skipped_documents":      s.SkippedDocuments,
		"must_read_count":        s.MustReadCount,
		"must_read_percentage":   s.MustReadPercentage,
		"research_questions":     s.ResearchQuestions,
		"relevance_threshold":    s.RelevanceThreshold,
		"contribution_threshold": s.ContributionThreshold,
		"cancelled":              s.Cancelled,
		"export_csv_base64":      s.ExportBase64,
		"documents":              s.Documents,
	}
}
