// Package memory provides the compaction store that replaces raw file
// content with compact per-file summaries in later agent steps.
//
// Information Hiding:
// - Record ordering and lookup structure hidden
// - Digest rendering format encapsulated
package memory

import (
	"fmt"
	"strings"
)

// Record is a compactable unit of context keyed by a stable identifier.
// The store is agnostic to the record shape; alternative compaction
// schemes can be substituted without touching the agent loop.
type Record interface {
	// Key returns the stable identifier (unique within the store).
	Key() string

	// Render returns the human-readable digest line(s) for this record.
	Render() string
}

// FileSummary is the standard record shape: a structured summary of a
// previously read file, emitted by the model after reading it.
type FileSummary struct {
	FilePath       string
	Overview       string
	KeyDefinitions []string
	CoreLogic      string
	Dependencies   []string
	NeededInfo     string
}

// Key returns the file path, the unique key for file summaries.
func (f FileSummary) Key() string {
	return f.FilePath
}

// Render formats the summary as a digest block.
func (f FileSummary) Render() string {
	parts := []string{fmt.Sprintf("File: %s", f.FilePath)}
	if f.Overview != "" {
		parts = append(parts, fmt.Sprintf("Overview: %s", f.Overview))
	}
	if len(f.KeyDefinitions) > 0 {
		parts = append(parts, fmt.Sprintf("Key definitions: %s", strings.Join(f.KeyDefinitions, "; ")))
	}
	if f.CoreLogic != "" {
		parts = append(parts, fmt.Sprintf("Core logic: %s", f.CoreLogic))
	}
	if len(f.Dependencies) > 0 {
		parts = append(parts, fmt.Sprintf("Dependencies: %s", strings.Join(f.Dependencies, " -> ")))
	}
	if f.NeededInfo != "" {
		parts = append(parts, fmt.Sprintf("Needed info: %s", f.NeededInfo))
	}
	return strings.Join(parts, "\n")
}

// Store holds records in first-seen key order. Upserting a record whose
// key already exists replaces the old record entirely; order is unchanged.
// The store is owned by a single session and lives only for the process.
type Store struct {
	order   []string
	records map[string]Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]Record),
	}
}

// Upsert inserts the record, replacing any existing record with the same key.
// Records with an empty key are ignored.
func (s *Store) Upsert(r Record) {
	key := r.Key()
	if key == "" {
		return
	}
	if _, exists := s.records[key]; !exists {
		s.order = append(s.order, key)
	}
	s.records[key] = r
}

// Get returns the record for a key.
func (s *Store) Get(key string) (Record, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Keys returns the stored keys in first-seen order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Digest renders every record in first-seen order, joined by blank lines.
// An empty store renders as the empty string so callers can omit the
// section entirely.
func (s *Store) Digest() string {
	if len(s.order) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(s.order))
	for _, key := range s.order {
		blocks = append(blocks, s.records[key].Render())
	}
	return strings.Join(blocks, "\n\n")
}

// Clear removes all records. Invoked only by an explicit user reset.
func (s *Store) Clear() {
	s.order = nil
	s.records = make(map[string]Record)
}
