// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the screening engine:
// process descriptors and results, stored documents, screening output,
// and stage configuration.
package types

import "fmt"

// InputKind categorizes a declared process parameter.
type InputKind string

const (
	InputText         InputKind = "text"
	InputNumber       InputKind = "number"
	InputSelect       InputKind = "select"
	InputDocumentList InputKind = "document_list"
)

// InputField describes one expected parameter of a process.
type InputField struct {
	// Name is the parameter map key.
	Name string `json:"name" yaml:"name"`

	// Label is the human-readable field name.
	Label string `json:"label" yaml:"label"`

	// Kind categorizes the expected value.
	Kind InputKind `json:"kind" yaml:"kind"`

	// Required marks parameters that must be present before execution.
	Required bool `json:"required" yaml:"required"`

	// Options lists allowed values for select fields.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Default is the value assumed when an optional field is absent.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// InputSchema declares the parameters a process expects. It is advisory:
// the engine checks presence of required fields, nothing more.
type InputSchema struct {
	Fields []InputField `json:"fields" yaml:"fields"`
}

// Required returns the names of all required fields in declaration order.
func (s InputSchema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Capabilities flags what a process supports.
type Capabilities struct {
	SupportsBatch     bool `json:"supports_batch" yaml:"supports_batch"`
	SupportsStreaming bool `json:"supports_streaming" yaml:"supports_streaming"`
	RequiresCognitive bool `json:"requires_cognitive" yaml:"requires_cognitive"`
}

// CatalogEntry is the discovery view of a registered process.
type CatalogEntry struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Category    string      `json:"category" yaml:"category"`
	Schema      InputSchema `json:"schema" yaml:"schema"`
}

// Result is the outcome of one process execution. Failures cross the
// process boundary as data, never as propagated errors: callers check
// Success and ErrorMessage instead of catching anything.
type Result struct {
	// Success reports whether the run completed.
	Success bool `json:"success" yaml:"success"`

	// Data holds the process output keyed by name. Nil on failure.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	// ErrorMessage describes the failure. Empty on success.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Failure builds a failed Result with a formatted message.
func Failure(format string, args ...any) Result {
	return Result{Success: false, ErrorMessage: fmt.Sprintf(format, args...)}
}
