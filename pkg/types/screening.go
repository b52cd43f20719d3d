// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QuestionAssessment is the dual relevance/contribution judgement of one
// document against one research question. Exactly one assessment exists
// per question per screened document, in question order.
type QuestionAssessment struct {
	// QuestionIndex is the zero-based position of the research question.
	QuestionIndex int `json:"question_index" yaml:"question_index"`

	// RelevanceScore is in [0,1]: does the document discuss topics
	// related to the question.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// ContributionScore is in [0,1]: does the document provide direct
	// findings for the question. Stronger than relevance.
	ContributionScore float64 `json:"contribution_score" yaml:"contribution_score"`

	// RelevanceIndicator is set when RelevanceScore meets the fixed
	// indicator cutoff. Independent of the caller-supplied thresholds.
	RelevanceIndicator bool `json:"relevance_indicator" yaml:"relevance_indicator"`

	// ContributionIndicator is set when ContributionScore meets the
	// fixed indicator cutoff.
	ContributionIndicator bool `json:"contribution_indicator" yaml:"contribution_indicator"`

	// RelevanceReasoning is the model's explanation for the relevance score.
	RelevanceReasoning string `json:"relevance_reasoning" yaml:"relevance_reasoning"`

	// ContributionReasoning is the model's explanation for the contribution score.
	ContributionReasoning string `json:"contribution_reasoning" yaml:"contribution_reasoning"`
}

// DocumentScreening is the full screening outcome for one document.
// Built incrementally during a run and never mutated after it is
// appended to the result list.
type DocumentScreening struct {
	DocumentID string   `json:"document_id" yaml:"document_id"`
	Title      string   `json:"title" yaml:"title"`
	Abstract   string   `json:"abstract" yaml:"abstract"`
	Authors    []string `json:"authors" yaml:"authors"`
	Year       int      `json:"year" yaml:"year"`
	Venue      string   `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI        string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Link       string   `json:"link,omitempty" yaml:"link,omitempty"`

	// Topics and Entities come from semantic extraction over the abstract.
	Topics   []string `json:"topics" yaml:"topics"`
	Entities []string `json:"entities" yaml:"entities"`

	// Keywords is the deduplicated union of extracted and source
	// keywords, first occurrence order preserved.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Assessments holds one entry per research question, in question order.
	Assessments []QuestionAssessment `json:"assessments" yaml:"assessments"`

	// MustRead is true iff at least one assessment meets both the
	// relevance and contribution thresholds simultaneously.
	MustRead bool `json:"must_read" yaml:"must_read"`
}

// DocumentProjection is the compact per-document view included in the
// batch summary for display.
type DocumentProjection struct {
	ID          string               `json:"id" yaml:"id"`
	Title       string               `json:"title" yaml:"title"`
	Authors     []string             `json:"authors" yaml:"authors"`
	Year        int                  `json:"year" yaml:"year"`
	MustRead    bool                 `json:"must_read" yaml:"must_read"`
	Topics      []string             `json:"topics" yaml:"topics"`
	Entities    []string             `json:"entities" yaml:"entities"`
	Keywords    []string             `json:"keywords" yaml:"keywords"`
	Assessments []QuestionAssessment `json:"assessments" yaml:"assessments"`
}

// ScreeningSummary is the read-only aggregate produced once at the end
// of a screening run.
type ScreeningSummary struct {
	// TotalDocuments is the fetched corpus size, including documents
	// skipped for lacking an abstract.
	TotalDocuments int `json:"total_documents" yaml:"total_documents"`

	// ProcessedDocuments counts documents that completed both phases.
	ProcessedDocuments int `json:"processed_documents" yaml:"processed_documents"`

	// SkippedDocuments counts documents excluded for lacking an abstract.
	SkippedDocuments int `json:"skipped_documents" yaml:"skipped_documents"`

	MustReadCount int `json:"must_read_count" yaml:"must_read_count"`

	// MustReadPercentage is MustReadCount/ProcessedDocuments*100, or 0
	// when nothing was processed.
	MustReadPercentage float64 `json:"must_read_percentage" yaml:"must_read_percentage"`

	ResearchQuestions []string `json:"research_questions" yaml:"research_questions"`

	RelevanceThreshold    float64 `json:"relevance_threshold" yaml:"relevance_threshold"`
	ContributionThreshold float64 `json:"contribution_threshold" yaml:"contribution_threshold"`

	// Cancelled marks a run stopped early by cancellation. Such a run
	// still reports Success with the partial result set.
	Cancelled bool `json:"cancelled" yaml:"cancelled"`

	// ExportBase64 is the base64-encoded tabular export blob.
	ExportBase64 string `json:"export_base64" yaml:"export_base64"`

	Documents []DocumentProjection `json:"documents" yaml:"documents"`
}
