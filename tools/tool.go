// Package tools provides the tool system the agent exposes to the model.
//
// Information Hiding:
// - Tool execution details hidden behind interface
// - Parameter schemas and coercion rules hidden in metadata
// - Error handling internalized per tool
package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Parameter defines a parameter schema for a tool. Default documents the
// value applied when an optional parameter is omitted; it is surfaced to
// the model and used by the dispatcher during coercion.
type Parameter struct {
	Name        string `json:"name"`
	ParamType   string `json:"param_type"` // "string" or "integer"
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default,omitempty"`
}

// Metadata describes what a tool does and how to call it.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

// String returns a short representation of the tool metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s: %s", m.Name, m.Description)
}

// Tool is the interface every tool implements. Execute receives
// JSON-encoded arguments already coerced to the schema's types.
type Tool interface {
	// Metadata returns the tool's name, description and parameter schema.
	Metadata() Metadata

	// Execute runs the tool. Domain failures are reported through the
	// Result, not as returned errors; a returned error means the tool
	// itself misbehaved and is wrapped by the dispatcher.
	Execute(ctx context.Context, args json.RawMessage) (Result, error)
}

// Result is a tool's raw output before dispatch wrapping.
type Result struct {
	Output string
	Error  error
}

// Success reports whether the execution succeeded.
func (r Result) Success() bool {
	return r.Error == nil
}

// SuccessResult creates a successful result.
func SuccessResult(output string) Result {
	return Result{Output: output}
}

// FailureResult creates a failed result.
func FailureResult(err error) Result {
	return Result{Error: err}
}

// FailureResultf creates a failed result with a formatted message.
func FailureResultf(format string, args ...interface{}) Result {
	return Result{Error: fmt.Errorf(format, args...)}
}

// Observation is the uniform success/failure wrapper the dispatcher
// produces for every invocation. It is what the loop feeds back to the
// model; failures are never raised past this boundary.
type Observation struct {
	Success bool   `json:"success"`
	Tool    string `json:"tool"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON renders the observation for inclusion in a conversation turn.
func (o Observation) JSON() string {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"tool":%q,"error":"observation marshal failed"}`, o.Tool)
	}
	return string(data)
}
