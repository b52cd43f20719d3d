package semantics

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/screening-engine/pkg/types"
)

type mockGenerator struct {
	response  string
	err       error
	gotPrompt string
}

func (m *mockGenerator) GenerateText(_ context.Context, prompt, _ string) (string, error) {
	m.gotPrompt = prompt
	return m.response, m.err
}

func TestExtractSemantics(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     types.Semantics
		wantErr  bool
	}{
		{
			name:     "bare json object",
			response: `{"topics": ["digital transformation"], "entities": ["TOGAF"], "keywords": ["adoption"]}`,
			want: types.Semantics{
				Topics:   []string{"digital transformation"},
				Entities: []string{"TOGAF"},
				Keywords: []string{"adoption"},
			},
		},
		{
			name:     "fenced json with language tag",
			response: "```json\n{\"topics\": [\"governance\"], \"entities\": [], \"keywords\": [\"policy\"]}\n```",
			want: types.Semantics{
				Topics:   []string{"governance"},
				Entities: []string{},
				Keywords: []string{"policy"},
			},
		},
		{
			name:     "fenced json without language tag",
			response: "```\n{\"topics\": [\"x\"], \"entities\": [\"y\"], \"keywords\": [\"z\"]}\n```",
			want: types.Semantics{
				Topics:   []string{"x"},
				Entities: []string{"y"},
				Keywords: []string{"z"},
			},
		},
		{
			name:     "surrounding whitespace tolerated",
			response: "\n  {\"topics\": [\"a\"], \"entities\": [], \"keywords\": []}  \n",
			want: types.Semantics{
				Topics:   []string{"a"},
				Entities: []string{},
				Keywords: []string{},
			},
		},
		{
			name:     "prose around json is an error",
			response: `Here is the analysis: {"topics": ["a"]}`,
			wantErr:  true,
		},
		{
			name:     "malformed json is an error",
			response: `{"topics": ["a",`,
			wantErr:  true,
		},
		{
			name:     "empty response is an error",
			response: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(&mockGenerator{response: tt.response})
			got, err := e.ExtractSemantics(context.Background(), "Some abstract.")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("semantics = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractSemanticsPromptCarriesAbstract(t *testing.T) {
	gen := &mockGenerator{response: `{"topics": [], "entities": [], "keywords": []}`}
	e := NewExtractor(gen)

	abstract := "A study of enterprise adoption patterns."
	if _, err := e.ExtractSemantics(context.Background(), abstract); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gen.gotPrompt, abstract) {
		t.Error("prompt does not contain the abstract")
	}
}

func TestExtractSemanticsBackendError(t *testing.T) {
	e := NewExtractor(&mockGenerator{err: fmt.Errorf("api down")})

	_, err := e.ExtractSemantics(context.Background(), "abstract")
	if err == nil || !strings.Contains(err.Error(), "api down") {
		t.Fatalf("error = %v, want wrapped backend error", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "fence with tag", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fence without tag", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "whitespace around fence", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
