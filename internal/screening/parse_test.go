package screening

import (
	"strings"
	"testing"
)

func TestParseAssessment(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantScore     float64
		wantReasoning string
		wantFallback  bool
	}{
		{
			name:          "well-formed response",
			raw:           "Score: 0.8\nReasoning: directly addresses the question",
			wantScore:     0.8,
			wantReasoning: "directly addresses the question",
		},
		{
			name:          "score above range clamps to 1.0",
			raw:           "Score: 1.5\nReasoning: strong fit",
			wantScore:     1.0,
			wantReasoning: "strong fit",
		},
		{
			name:          "score above range without decimals",
			raw:           "Score: 1.7\nReasoning: extremely relevant",
			wantScore:     1.0,
			wantReasoning: "extremely relevant",
		},
		{
			name:          "negative score clamps to 0.0",
			raw:           "Score: -3\nReasoning: unrelated",
			wantScore:     0.0,
			wantReasoning: "unrelated",
		},
		{
			name:          "no score token defaults to zero with raw fallback",
			raw:           "The document seems broadly related to the topic.",
			wantScore:     0.0,
			wantReasoning: "The document seems broadly related to the topic.",
			wantFallback:  true,
		},
		{
			name:          "multi-line reasoning is captured to end of text",
			raw:           "Score: 0.65\nReasoning: covers the topic\nbut lacks direct evidence",
			wantScore:     0.65,
			wantReasoning: "covers the topic\nbut lacks direct evidence",
		},
		{
			name:          "score without reasoning falls back to raw text",
			raw:           "Score: 0.4",
			wantScore:     0.4,
			wantReasoning: "Score: 0.4",
			wantFallback:  true,
		},
		{
			name:          "lowercase reasoning token is not recognized",
			raw:           "Score: 0.9\nreasoning: close match",
			wantScore:     0.9,
			wantReasoning: "Score: 0.9\nreasoning: close match",
			wantFallback:  true,
		},
		{
			name:          "first score match wins",
			raw:           "Score: 0.3\nReasoning: earlier Score: 0.9 was mentioned",
			wantScore:     0.3,
			wantReasoning: "earlier Score: 0.9 was mentioned",
		},
		{
			name:          "empty response",
			raw:           "",
			wantScore:     0.0,
			wantReasoning: "",
			wantFallback:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := parseAssessment(tt.raw)
			if a.score != tt.wantScore {
				t.Errorf("score = %v, want %v", a.score, tt.wantScore)
			}
			if a.reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %q, want %q", a.reasoning, tt.wantReasoning)
			}
			if a.fallback != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", a.fallback, tt.wantFallback)
			}
		})
	}
}

func TestParseAssessmentAlwaysInRange(t *testing.T) {
	inputs := []string{
		"Score: 99.9\nReasoning: x",
		"Score: -0.0001\nReasoning: x",
		"Score: 0\nReasoning: x",
		"Score: 1\nReasoning: x",
		"Score: 0.5000\nReasoning: x",
		"garbage with no protocol at all",
		strings.Repeat("Score: 2 ", 50),
	}
	for _, raw := range inputs {
		a := parseAssessment(raw)
		if a.score < 0.0 || a.score > 1.0 {
			t.Errorf("parseAssessment(%q).score = %v, outside [0,1]", raw, a.score)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.0001, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
