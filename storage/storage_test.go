package storage

import (
	"context"
	"path/filepath"
	"testing"

	"codescout/llm"
)

// backends returns one instance of every ConversationStorage implementation.
func backends(t *testing.T) map[string]ConversationStorage {
	t.Helper()

	sqlite, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]ConversationStorage{
		"memory": NewInMemoryStorage(),
		"sqlite": sqlite,
	}
}

func sampleHistory() []llm.ChatMessage {
	return []llm.ChatMessage{
		llm.UserMessage("where is login handled?"),
		llm.AssistantMessage("login lives in auth/login.go"),
	}
}

func TestSaveAndLoad(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			history := sampleHistory()

			if err := store.Save(ctx, "s1", history); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			loaded, err := store.Load(ctx, "s1")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(loaded) != len(history) {
				t.Fatalf("loaded %d messages, want %d", len(loaded), len(history))
			}
			for i := range history {
				if loaded[i] != history[i] {
					t.Errorf("message %d = %+v, want %+v", i, loaded[i], history[i])
				}
			}
		})
	}
}

func TestSaveReplacesTranscript(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, "s1", sampleHistory()); err != nil {
				t.Fatalf("first Save failed: %v", err)
			}
			shorter := []llm.ChatMessage{llm.UserMessage("only this")}
			if err := store.Save(ctx, "s1", shorter); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}

			loaded, err := store.Load(ctx, "s1")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(loaded) != 1 || loaded[0].Content != "only this" {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}
}

func TestLoadMissingSession(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			loaded, err := store.Load(context.Background(), "nope")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if loaded == nil || len(loaded) != 0 {
				t.Errorf("loaded = %#v, want empty slice", loaded)
			}
		})
	}
}

func TestDeleteAndExists(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Save(ctx, "s1", sampleHistory()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			exists, err := store.Exists(ctx, "s1")
			if err != nil || !exists {
				t.Fatalf("Exists = %v, %v; want true", exists, err)
			}

			if err := store.Delete(ctx, "s1"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			exists, err = store.Exists(ctx, "s1")
			if err != nil || exists {
				t.Errorf("Exists after delete = %v, %v; want false", exists, err)
			}
			loaded, err := store.Load(ctx, "s1")
			if err != nil || len(loaded) != 0 {
				t.Errorf("Load after delete = %v, %v", loaded, err)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, id := range []string{"a", "b"} {
				if err := store.Save(ctx, id, sampleHistory()); err != nil {
					t.Fatalf("Save %s failed: %v", id, err)
				}
			}

			sessions, err := store.ListSessions(ctx)
			if err != nil {
				t.Fatalf("ListSessions failed: %v", err)
			}
			if len(sessions) != 2 {
				t.Errorf("sessions = %v, want 2 entries", sessions)
			}
		})
	}
}

func TestSavedMutationIsolation(t *testing.T) {
	store := NewInMemoryStorage()
	ctx := context.Background()

	history := sampleHistory()
	if err := store.Save(ctx, "s1", history); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	history[0].Content = "mutated"

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded[0].Content == "mutated" {
		t.Error("stored transcript shares memory with caller slice")
	}
}

func TestOpenSqliteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "scout.db")

	store, err := OpenSqlite(path)
	if err != nil {
		t.Fatalf("OpenSqlite failed: %v", err)
	}
	defer store.Close()

	if err := store.Save(context.Background(), "s1", sampleHistory()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}
