// Client - transport wrapper around providers.
//
// The client is the agent's only path to the network: it applies the
// per-call timeout and classifies failures as transport errors so the
// loop can propagate them without guessing at causes.

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultCallTimeout bounds a single model call, streaming included.
const DefaultCallTimeout = 120 * time.Second

// TransportError wraps a failed model call. It terminates the current
// question but leaves session state intact.
type TransportError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("model transport (%s): %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Client wraps a Provider with timeout enforcement.
type Client struct {
	provider Provider
	timeout  time.Duration
}

// NewClient creates a client with the default call timeout.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider, timeout: DefaultCallTimeout}
}

// WithTimeout overrides the per-call timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// Chat sends a completion request and returns the assembled text.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (string, *TokenUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.provider.Chat(ctx, messages)
	if err != nil {
		return "", nil, c.wrap(ctx, err)
	}
	return response.Content, response.Usage, nil
}

// StreamChat streams a completion to chunks and returns when the full
// response has been delivered.
func (c *Client) StreamChat(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	usage, err := c.provider.StreamChat(ctx, messages, chunks)
	if err != nil {
		return usage, c.wrap(ctx, err)
	}
	return usage, nil
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// wrap classifies a provider error as a transport failure, marking
// timeouts explicitly.
func (c *Client) wrap(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !strings.Contains(err.Error(), "timed out") {
		err = fmt.Errorf("call timed out after %s: %w", c.timeout, err)
	}
	return &TransportError{Provider: c.provider.Name(), Err: err}
}
