package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/tokenagents/character-registry/internal/store"
	"github.com/tokenagents/character-registry/internal/store/storetest"
)

func makeSqliteStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "characters.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSqliteStore)
}

func TestNewCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "characters.db")
	if _, err := New(path); err != nil {
		t.Fatalf("expected parent dirs to be created: %v", err)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "characters.db")
	if _, err := New(path); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := New(path); err != nil {
		t.Fatalf("reopen against existing schema: %v", err)
	}
}
