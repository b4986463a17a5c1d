package scraperctl

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/scrapeops/scraperctl/internal/history/sqlite"
	"github.com/scrapeops/scraperctl/internal/launcher"
)

func TestNewWiresConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkDir = "/srv/scraper"
	cfg.Env = []string{"SCRAPE_MODE=full"}
	cfg.Git.ResetDepth = 3

	r := New(cfg)
	if r.Spec.Command != "./shop_scrape.py" {
		t.Fatalf("command: %q", r.Spec.Command)
	}
	if r.Spec.WorkDir != "/srv/scraper" {
		t.Fatalf("workdir: %q", r.Spec.WorkDir)
	}
	if r.Spec.LogPath != filepath.Join("/srv/scraper", "scrape.log") {
		t.Fatalf("log path: %q", r.Spec.LogPath)
	}
	if r.EntryPath != filepath.Join("/srv/scraper", "shop_scrape.py") {
		t.Fatalf("entry path: %q", r.EntryPath)
	}
	if r.ResetDepth != 3 {
		t.Fatalf("reset depth: %d", r.ResetDepth)
	}
	if r.Repo == nil || r.Log == nil {
		t.Fatalf("repo or logger not assembled")
	}

	found := false
	for _, kv := range r.Spec.Env {
		if kv == "SCRAPE_MODE=full" {
			found = true
		}
	}
	if !found {
		t.Fatalf("config env not merged into spec env")
	}
}

func TestNewHistoryStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.DSN = ""
	st, err := NewHistoryStore(cfg)
	if err != nil || st != nil {
		t.Fatalf("empty DSN should disable history: %v, %v", st, err)
	}

	cfg.WorkDir = t.TempDir()
	cfg.History.DSN = "audit.db"
	st, err = NewHistoryStore(cfg)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	defer func() { _ = st.Close() }()
	if _, ok := st.(*sqlite.Store); !ok {
		t.Fatalf("expected sqlite store, got %T", st)
	}
	if _, err := os.Stat(filepath.Join(cfg.WorkDir, "audit.db")); err != nil {
		t.Fatalf("database not created under workdir: %v", err)
	}
}

func TestCheckStatusNotRunning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkDir = t.TempDir()

	st, err := CheckStatus(cfg)
	if err != nil {
		t.Fatalf("status without pidfile: %v", err)
	}
	if st.Running {
		t.Fatalf("reported running with no pidfile")
	}
}

func TestCheckStatusViaPIDFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkDir = t.TempDir()

	// The test process itself stands in for the scraper.
	spec := launcher.Spec{Command: "./shop_scrape.py", LogPath: cfg.ScrapeLogPath()}
	if err := launcher.WritePIDFile(cfg.PIDFilePath(), os.Getpid(), spec); err != nil {
		t.Fatalf("write pidfile: %v", err)
	}

	st, err := CheckStatus(cfg)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.Running {
		t.Fatalf("own pid not detected as running")
	}
	if st.PID != os.Getpid() {
		t.Fatalf("pid: %d", st.PID)
	}
	if st.Command != "./shop_scrape.py" {
		t.Fatalf("command from meta: %q", st.Command)
	}
	if st.Uptime < 0 {
		t.Fatalf("negative uptime: %v", st.Uptime)
	}
}

func TestCheckStatusViaCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	cfg := DefaultConfig()
	cfg.WorkDir = t.TempDir()
	cfg.Status.Command = "true"

	st, err := CheckStatus(cfg)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.Running {
		t.Fatalf("probe command exiting zero should report running")
	}

	cfg.Status.Command = "false"
	st, err = CheckStatus(cfg)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Running {
		t.Fatalf("probe command exiting nonzero should report stopped")
	}
}
