// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screening

import (
	"regexp"
	"strconv"
	"strings"
)

// Response-protocol patterns. The expected shape is:
//
//	Score: [0.0-1.0]
//	Reasoning: [explanation]
//
// scorePattern matches the first number after "Score:"; reasoningPattern
// captures everything after "Reasoning:" (case-sensitive) to end of text.
var (
	scorePattern     = regexp.MustCompile(`Score:\s*(-?\d+(?:\.\d+)?)`)
	reasoningPattern = regexp.MustCompile(`(?s)Reasoning:\s*(.*)\z`)
)

// assessment is the parsed form of one model response.
type assessment struct {
	score     float64
	reasoning string

	// fallback is set when the response did not match the protocol and
	// a degraded value was used instead.
	fallback bool
}

// parseAssessment extracts a clamped score and a reasoning string from
// raw model output. It never fails: a missing or unparseable score
// defaults to 0.0, a missing reasoning falls back to the entire raw
// response.
func parseAssessment(raw string) assessment {
	var a assessment

	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			a.score = clamp01(v)
		} else {
			a.fallback = true
		}
	} else {
		a.fallback = true
	}

	if m := reasoningPattern.FindStringSubmatch(raw); m != nil {
		a.reasoning = strings.TrimSpace(m[1])
	} else {
		a.reasoning = raw
		a.fallback = true
	}

	return a
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
