// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screening

import (
	"bytes"
	"fmt"
	"text/template"
)

// systemPrompt frames every assessment call.
const systemPrompt = "You are an assistant for systematic literature screening. " +
	"You assess academic documents against research questions and always answer in the requested format."

// promptInput carries the values rendered into an assessment prompt.
type promptInput struct {
	Question string
	Title    string
	Abstract string
}

// relevancePromptTmpl asks whether the document discusses topics
// related to the research question.
var relevancePromptTmpl = template.Must(template.New("relevance").Parse(`Assess the RELEVANCE of the following document to the research question.

Research question:
{{.Question}}

Document title:
{{.Title}}

Abstract:
{{.Abstract}}

Relevance means the document discusses topics related to the research question, even if it does not answer it directly.

Respond in exactly this format:
Score: [0.0-1.0]
Reasoning: [explanation]
`))

// contributionPromptTmpl asks whether the document provides direct
// findings for the research question. Contribution is a stronger
// criterion than relevance.
var contributionPromptTmpl = template.Must(template.New("contribution").Parse(`Assess the CONTRIBUTION of the following document to the research question.

Research question:
{{.Question}}

Document title:
{{.Title}}

Abstract:
{{.Abstract}}

Contribution means the document provides direct findings, evidence, or results that help answer the research question. This is stronger than mere topical relevance.

Respond in exactly this format:
Score: [0.0-1.0]
Reasoning: [explanation]
`))

// renderPrompt executes tmpl with the question, title, and abstract.
func renderPrompt(tmpl *template.Template, question, title, abstract string) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptInput{Question: question, Title: title, Abstract: abstract})
	if err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
