// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs analytical processes: it keeps a registry keyed
// by process identifier, exposes the catalog for discovery, and drives
// one execution end-to-end (validate, run, record the outcome).
//
// A run is one sequential call chain. The engine holds no execution
// queue and introduces no parallelism; failures of any kind surface as
// a failed Result rather than an error crossing the process boundary.
package engine

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// Process is the contract every analytical process implements.
type Process interface {
	// ID is the registry key for this process.
	ID() string

	// Name is the human-readable process name.
	Name() string

	// Description explains what the process does.
	Description() string

	// Category groups related processes in the catalog.
	Category() string

	// InputSchema declares the expected parameters.
	InputSchema() types.InputSchema

	// Validate checks that required parameter keys are present. It does
	// not inspect value shape; parsing failures surface later, during
	// Execute, as execution failures.
	Validate(ec *ExecContext) error

	// Execute runs the process to completion and returns its Result.
	// Cancellation is delivered through ctx.
	Execute(ctx context.Context, ec *ExecContext) types.Result

	// Capabilities reports what the process supports.
	Capabilities() types.Capabilities
}

// NotFoundError reports an unknown process identifier.
type NotFoundError struct {
	ProcessID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("process %q not found", e.ProcessID)
}

// ValidationError reports a precondition failure before execution.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Engine is the process registry and lifecycle runner.
type Engine struct {
	mu        sync.RWMutex
	processes map[string]Process

	journeys JourneyLookup
	deps     Collaborators
}

// New builds an Engine with an empty registry. journeys is consulted on
// every run; deps are handed to each process through its ExecContext.
func New(journeys JourneyLookup, deps Collaborators) *Engine {
	return &Engine{
		processes: make(map[string]Process),
		journeys:  journeys,
		deps:      deps,
	}
}

// Register adds a process keyed by its declared identifier.
// Re-registration under the same key replaces the previous entry.
func (e *Engine) Register(p Process) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.processes[p.ID()] = p
}

// Catalog returns a snapshot of all registered processes, sorted by ID.
// An empty catalog is valid.
func (e *Engine) Catalog() []types.CatalogEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entries := make([]types.CatalogEntry, 0, len(e.processes))
	for _, p := range e.processes {
		entries = append(entries, types.CatalogEntry{
			ID:          p.ID(),
			Name:        p.Name(),
			Description: p.Description(),
			Category:    p.Category(),
			Schema:      p.InputSchema(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Run executes one process invocation end-to-end and returns its
// Result. Every failure mode is converted into a failed Result: unknown
// process, missing journey, validation failure, execution error, and
// panics inside the process.
func (e *Engine) Run(ctx context.Context, processID, userID, journeyID string, params map[string]any, progress io.Writer) (result types.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = types.Failure("process %s panicked: %v", processID, r)
		}
	}()

	e.mu.RLock()
	p, ok := e.processes[processID]
	e.mu.RUnlock()
	if !ok {
		err := &NotFoundError{ProcessID: processID}
		return types.Failure("%s", err.Error())
	}

	exists, err := e.journeys.JourneyExists(ctx, journeyID)
	if err != nil {
		return types.Failure("checking journey %s: %v", journeyID, err)
	}
	if !exists {
		verr := &ValidationError{Message: fmt.Sprintf("journey %q not found", journeyID)}
		return types.Failure("%s", verr.Error())
	}

	if progress == nil {
		progress = io.Discard
	}
	if params == nil {
		params = map[string]any{}
	}

	ec := &ExecContext{
		ExecutionID:   newExecutionID(),
		UserID:        userID,
		JourneyID:     journeyID,
		Params:        params,
		Collaborators: e.deps,
		Progress:      progress,
	}

	if err := p.Validate(ec); err != nil {
		return types.Failure("%s", err.Error())
	}

	fmt.Fprintf(progress, "running %s (execution %s)\n", processID, ec.ExecutionID)
	return p.Execute(ctx, ec)
}

// newExecutionID returns a random 12-hex-character run identifier.
func newExecutionID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "exec-unknown"
	}
	return fmt.Sprintf("%x", b)
}
