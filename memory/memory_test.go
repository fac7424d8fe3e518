package memory

import (
	"strings"
	"testing"
)

func TestStoreUpsertAppendsNewKeys(t *testing.T) {
	store := NewStore()

	store.Upsert(FileSummary{FilePath: "auth.go", Overview: "authentication"})
	store.Upsert(FileSummary{FilePath: "db.go", Overview: "database access"})

	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}

	keys := store.Keys()
	if keys[0] != "auth.go" || keys[1] != "db.go" {
		t.Errorf("expected first-seen order [auth.go db.go], got %v", keys)
	}
}

func TestStoreUpsertReplacesExistingKey(t *testing.T) {
	store := NewStore()

	store.Upsert(FileSummary{FilePath: "auth.go", Overview: "old", NeededInfo: "token format"})
	store.Upsert(FileSummary{FilePath: "db.go", Overview: "database"})
	store.Upsert(FileSummary{FilePath: "auth.go", Overview: "new"})

	if store.Len() != 2 {
		t.Fatalf("expected count unchanged at 2, got %d", store.Len())
	}

	r, ok := store.Get("auth.go")
	if !ok {
		t.Fatal("expected auth.go to exist")
	}
	summary := r.(FileSummary)
	if summary.Overview != "new" {
		t.Errorf("expected replacement overview 'new', got %q", summary.Overview)
	}
	if summary.NeededInfo != "" {
		t.Error("expected full replacement, old NeededInfo survived")
	}

	keys := store.Keys()
	if keys[0] != "auth.go" || keys[1] != "db.go" {
		t.Errorf("expected order preserved on replace, got %v", keys)
	}
}

func TestStoreLastRecordPerKeyWins(t *testing.T) {
	store := NewStore()

	sequence := []FileSummary{
		{FilePath: "a.go", Overview: "1"},
		{FilePath: "b.go", Overview: "2"},
		{FilePath: "a.go", Overview: "3"},
		{FilePath: "c.go", Overview: "4"},
		{FilePath: "b.go", Overview: "5"},
	}
	for _, s := range sequence {
		store.Upsert(s)
	}

	want := map[string]string{"a.go": "3", "b.go": "5", "c.go": "4"}
	for key, overview := range want {
		r, ok := store.Get(key)
		if !ok {
			t.Fatalf("missing key %s", key)
		}
		if got := r.(FileSummary).Overview; got != overview {
			t.Errorf("key %s: expected overview %q, got %q", key, overview, got)
		}
	}

	keys := store.Keys()
	if keys[0] != "a.go" || keys[1] != "b.go" || keys[2] != "c.go" {
		t.Errorf("expected first-seen key order, got %v", keys)
	}
}

func TestStoreDigest(t *testing.T) {
	store := NewStore()

	if store.Digest() != "" {
		t.Error("expected empty digest for empty store")
	}

	store.Upsert(FileSummary{
		FilePath:       "auth.go",
		Overview:       "handles login",
		KeyDefinitions: []string{"Login()", "Logout()"},
		CoreLogic:      "validates JWT tokens",
		Dependencies:   []string{"user.go", "token.go"},
		NeededInfo:     "token expiry policy",
	})

	digest := store.Digest()
	for _, want := range []string{
		"File: auth.go",
		"Key definitions: Login(); Logout()",
		"Dependencies: user.go -> token.go",
		"Needed info: token expiry policy",
	} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}

func TestStoreDigestOmitsEmptyFields(t *testing.T) {
	store := NewStore()
	store.Upsert(FileSummary{FilePath: "x.go"})

	digest := store.Digest()
	if strings.Contains(digest, "Overview") || strings.Contains(digest, "Needed info") {
		t.Errorf("expected empty fields omitted, got:\n%s", digest)
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Upsert(FileSummary{FilePath: "a.go"})
	store.Upsert(FileSummary{FilePath: "b.go"})

	store.Clear()

	if store.Len() != 0 {
		t.Errorf("expected empty store after clear, got %d", store.Len())
	}
	if store.Digest() != "" {
		t.Error("expected empty digest after clear")
	}

	// Cleared store accepts new records with fresh ordering.
	store.Upsert(FileSummary{FilePath: "c.go"})
	if keys := store.Keys(); len(keys) != 1 || keys[0] != "c.go" {
		t.Errorf("expected fresh ordering after clear, got %v", keys)
	}
}

func TestStoreIgnoresEmptyKey(t *testing.T) {
	store := NewStore()
	store.Upsert(FileSummary{FilePath: ""})

	if store.Len() != 0 {
		t.Errorf("expected record with empty key to be ignored, got %d records", store.Len())
	}
}
