// Package storage persists conversation transcripts across process runs.
// Memory summaries are deliberately not persisted; they are rebuilt by the
// model as a session explores, and stale summaries are worse than none.
//
// Information Hiding:
// - Storage backend implementation details hidden behind interface
// - Each backend encapsulates its own data structures and schema

package storage

import (
	"context"

	"codescout/llm"
)

// ConversationStorage stores per-session conversation transcripts.
type ConversationStorage interface {
	// Save replaces the stored transcript for a session.
	Save(ctx context.Context, sessionID string, history []llm.ChatMessage) error

	// Load returns the transcript for a session, in order. A missing
	// session yields an empty slice, not an error.
	Load(ctx context.Context, sessionID string) ([]llm.ChatMessage, error)

	// Delete removes a session and its transcript.
	Delete(ctx context.Context, sessionID string) error

	// ListSessions returns all known session IDs, most recent first
	// where the backend tracks recency.
	ListSessions(ctx context.Context) ([]string, error)

	// Exists reports whether a session has been saved.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
