package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	type draft struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	in := []draft{{ID: "a", Content: "first"}, {ID: "b", Content: "second"}}
	s.Save(ctx, KeyDraftPosts, in)

	var out []draft
	if !s.Load(ctx, KeyDraftPosts, &out) {
		t.Fatal("expected a stored value")
	}
	if len(out) != 2 || out[1].Content != "second" {
		t.Fatalf("loaded = %+v", out)
	}
}

func TestSaveOverwritesExistingKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, KeyPostContents, map[string]string{"p1": "old"})
	s.Save(ctx, KeyPostContents, map[string]string{"p1": "new"})

	var out map[string]string
	if !s.Load(ctx, KeyPostContents, &out) {
		t.Fatal("expected a stored value")
	}
	if out["p1"] != "new" {
		t.Fatalf("value = %q, want %q", out["p1"], "new")
	}
}

func TestLoadAbsentKeyLeavesDestUntouched(t *testing.T) {
	s := openTestStore(t)

	out := []string{"sentinel"}
	if s.Load(context.Background(), "never-written", &out) {
		t.Fatal("absent key should report false")
	}
	if len(out) != 1 || out[0] != "sentinel" {
		t.Fatalf("dest mutated: %+v", out)
	}
}

func TestLoadCorruptEntryFallsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO kv_state (key, value) VALUES (?, ?)",
		KeySavedSources, []byte("{{not json")); err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	var out []string
	if s.Load(ctx, KeySavedSources, &out) {
		t.Fatal("corrupt entry should report false")
	}
	if out != nil {
		t.Fatalf("dest mutated: %+v", out)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.Save(ctx, KeyApiKeys, []string{"k1"})
	s.Save(ctx, KeyApiStats, []string{"s1"})

	s.Remove(ctx, KeyApiKeys)
	var out []string
	if s.Load(ctx, KeyApiKeys, &out) {
		t.Fatal("removed key should be gone")
	}
	if !s.Load(ctx, KeyApiStats, &out) {
		t.Fatal("other keys must survive a remove")
	}

	s.Clear(ctx)
	if s.Load(ctx, KeyApiStats, &out) {
		t.Fatal("clear should drop every key")
	}
}
