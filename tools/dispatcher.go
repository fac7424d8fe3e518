// Tool dispatch with argument coercion and uniform failure wrapping.
//
// Information Hiding:
// - Argument coercion rules hidden (parser passes strings only)
// - Timeout application hidden
// - Failure wrapping hidden: nothing on this path panics or raises
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DefaultDispatchTimeout bounds a single tool invocation.
const DefaultDispatchTimeout = 30 * time.Second

// Dispatcher routes named invocations to registered tools. It owns the
// string-to-typed coercion of arguments: the grammar parser hands over
// plain string maps, and the dispatcher converts integer-typed
// parameters and applies documented defaults before execution.
// The dispatcher itself is stateless.
type Dispatcher struct {
	registry *Registry
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher over a registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		timeout:  DefaultDispatchTimeout,
	}
}

// WithTimeout overrides the per-invocation timeout.
func (d *Dispatcher) WithTimeout(timeout time.Duration) *Dispatcher {
	if timeout > 0 {
		d.timeout = timeout
	}
	return d
}

// Dispatch executes the named tool with string-typed arguments.
// Every outcome is an Observation; unknown tools, bad arguments and
// tool errors all come back as structured failures so the loop can
// surface them to the model and continue.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]string) Observation {
	tool, exists := d.registry.Get(name)
	if !exists {
		return Observation{
			Success: false,
			Tool:    name,
			Error:   fmt.Sprintf("unknown tool: %s", name),
		}
	}

	raw, err := coerceArguments(tool.Metadata(), args)
	if err != nil {
		return Observation{Success: false, Tool: name, Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	result, err := tool.Execute(ctx, raw)
	if err != nil {
		return Observation{Success: false, Tool: name, Error: err.Error()}
	}
	if !result.Success() {
		return Observation{Success: false, Tool: name, Error: result.Error.Error()}
	}
	return Observation{Success: true, Tool: name, Result: result.Output}
}

// coerceArguments converts a string-typed argument map into the JSON
// shape the tool expects, following its parameter schema: integers are
// parsed, defaults fill omitted optional parameters, and missing
// required parameters fail early.
func coerceArguments(meta Metadata, args map[string]string) (json.RawMessage, error) {
	coerced := make(map[string]interface{}, len(meta.Parameters))

	known := make(map[string]bool, len(meta.Parameters))
	for _, p := range meta.Parameters {
		known[p.Name] = true

		value, provided := args[p.Name]
		if !provided || value == "" {
			if p.Required {
				return nil, fmt.Errorf("%s: missing required parameter %q", meta.Name, p.Name)
			}
			if p.Default == "" {
				continue
			}
			value = p.Default
		}

		switch p.ParamType {
		case "integer":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%s: parameter %q must be an integer, got %q", meta.Name, p.Name, value)
			}
			coerced[p.Name] = n
		default:
			coerced[p.Name] = value
		}
	}

	for name := range args {
		if !known[name] {
			return nil, fmt.Errorf("%s: unknown parameter %q", meta.Name, name)
		}
	}

	raw, err := json.Marshal(coerced)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode arguments: %w", meta.Name, err)
	}
	return raw, nil
}
