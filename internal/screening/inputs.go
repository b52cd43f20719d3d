// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screening

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseQuestions splits free text into research questions, one per
// line, discarding blank lines after trimming.
func parseQuestions(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		q := strings.TrimSpace(line)
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

// parseDocumentIDs accepts the serialized document ID list in the
// shapes the parameter map delivers: a string slice, an any slice, a
// JSON array string, or a comma-separated string.
func parseDocumentIDs(v any) ([]string, error) {
	switch ids := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return trimNonEmpty(ids), nil
	case []any:
		out := make([]string, 0, len(ids))
		for i, e := range ids {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("document id %d is %T, not a string", i, e)
			}
			out = append(out, s)
		}
		return trimNonEmpty(out), nil
	case string:
		trimmed := strings.TrimSpace(ids)
		if trimmed == "" {
			return nil, nil
		}
		if strings.HasPrefix(trimmed, "[") {
			var out []string
			if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
				return nil, fmt.Errorf("parsing document id list: %w", err)
			}
			return trimNonEmpty(out), nil
		}
		return trimNonEmpty(strings.Split(trimmed, ",")), nil
	default:
		return nil, fmt.Errorf("document_ids is %T, expected a list or string", v)
	}
}

// trimNonEmpty trims each entry and drops the empty ones.
func trimNonEmpty(ids []string) []string {
	var out []string
	for _, id := range ids {
		if t := strings.TrimSpace(id); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseThreshold parses an optional decimal-string threshold. An absent
// or empty value yields def; an unparseable value is an execution
// failure, not a silent default.
func parseThreshold(raw string, present bool, def float64, name string) (float64, error) {
	if !present || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", name, raw, err)
	}
	return v, nil
}

// mergeKeywords returns the deduplicated union of extracted and source
// keywords, preserving order of first occurrence.
func mergeKeywords(extracted, source []string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, kw := range append(append([]string{}, extracted...), source...) {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		merged = append(merged, kw)
	}
	return merged
}
