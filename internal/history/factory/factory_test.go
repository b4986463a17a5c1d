package factory

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/scrapeops/scraperctl/internal/history/sqlite"
)

func TestNewStoreFromDSNSQLitePath(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	st, err := NewStoreFromDSN(dsn)
	if err != nil {
		t.Fatalf("plain path: %v", err)
	}
	defer func() { _ = st.Close() }()
	if _, ok := st.(*sqlite.Store); !ok {
		t.Fatalf("expected sqlite store, got %T", st)
	}
}

func TestNewStoreFromDSNSQLiteScheme(t *testing.T) {
	st, err := NewStoreFromDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("sqlite scheme: %v", err)
	}
	defer func() { _ = st.Close() }()
	if _, ok := st.(*sqlite.Store); !ok {
		t.Fatalf("expected sqlite store, got %T", st)
	}
}

func TestNewStoreFromDSNEmpty(t *testing.T) {
	if _, err := NewStoreFromDSN("   "); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestNewStoreFromDSNUnsupported(t *testing.T) {
	_, err := NewStoreFromDSN("redis://localhost:6379")
	if err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("unexpected error: %v", err)
	}
}
