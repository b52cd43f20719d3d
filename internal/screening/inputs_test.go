package screening

import (
	"reflect"
	"testing"
)

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "one question per line",
			text: "How is X adopted?\nWhat barriers exist?",
			want: []string{"How is X adopted?", "What barriers exist?"},
		},
		{
			name: "blank and whitespace lines discarded",
			text: "\n  \nFirst question\n\t\nSecond question\n\n",
			want: []string{"First question", "Second question"},
		},
		{
			name: "lines are trimmed",
			text: "  padded question  ",
			want: []string{"padded question"},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace-only input",
			text: "   \n\t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseQuestions(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseQuestions(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseDocumentIDs(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    []string
		wantErr bool
	}{
		{name: "string slice", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "any slice", in: []any{"a", "b"}, want: []string{"a", "b"}},
		{name: "any slice with non-string", in: []any{"a", 7}, wantErr: true},
		{name: "json array string", in: `["doc1","doc2"]`, want: []string{"doc1", "doc2"}},
		{name: "malformed json array", in: `["doc1",`, wantErr: true},
		{name: "comma-separated string", in: "doc1, doc2 ,doc3", want: []string{"doc1", "doc2", "doc3"}},
		{name: "empty string", in: "", want: nil},
		{name: "nil value", in: nil, want: nil},
		{name: "empty entries dropped", in: []string{"a", " ", ""}, want: []string{"a"}},
		{name: "unsupported type", in: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDocumentIDs(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseDocumentIDs(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
		want    float64
		wantErr bool
	}{
		{name: "absent uses default", present: false, want: 0.7},
		{name: "empty uses default", raw: "", present: true, want: 0.7},
		{name: "whitespace uses default", raw: "  ", present: true, want: 0.7},
		{name: "decimal string parses", raw: "0.85", present: true, want: 0.85},
		{name: "padded value parses", raw: " 0.5 ", present: true, want: 0.5},
		{name: "unparseable value is an error", raw: "high", present: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseThreshold(tt.raw, tt.present, 0.7, "relevance_threshold")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseThreshold(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMergeKeywords(t *testing.T) {
	tests := []struct {
		name      string
		extracted []string
		source    []string
		want      []string
	}{
		{
			name:      "union preserves first occurrence order",
			extracted: []string{"ml", "nlp"},
			source:    []string{"nlp", "screening"},
			want:      []string{"ml", "nlp", "screening"},
		},
		{
			name:      "duplicates within one list collapse",
			extracted: []string{"a", "a", "b"},
			source:    nil,
			want:      []string{"a", "b"},
		},
		{
			name:      "empty entries dropped",
			extracted: []string{"", "a"},
			source:    []string{""},
			want:      []string{"a"},
		},
		{
			name:      "both empty",
			extracted: nil,
			source:    nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeKeywords(tt.extracted, tt.source)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mergeKeywords(%v, %v) = %v, want %v", tt.extracted, tt.source, got, tt.want)
			}
		})
	}
}
