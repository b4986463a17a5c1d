// Package scraperctl relaunches the shop scraping worker: roll the
// checkout back, pull upstream, mark the entry script executable, clear
// the previous log and spawn the scraper detached. The package is a thin
// facade over the internal packages so the tool can also be embedded.
package scraperctl

import (
	"time"

	"github.com/scrapeops/scraperctl/internal/config"
	"github.com/scrapeops/scraperctl/internal/detector"
	"github.com/scrapeops/scraperctl/internal/env"
	"github.com/scrapeops/scraperctl/internal/gitops"
	"github.com/scrapeops/scraperctl/internal/history"
	"github.com/scrapeops/scraperctl/internal/history/factory"
	"github.com/scrapeops/scraperctl/internal/launcher"
	"github.com/scrapeops/scraperctl/internal/restarter"
)

// Re-export core types for external consumers. These are aliases so
// conversions are zero-cost.

type Config = config.Config

type GitConfig = config.GitConfig

type Restarter = restarter.Restarter

type Record = history.Record

type Step = history.Step

type HistoryStore = history.Store

// DefaultMessage is the fixed console line printed by every restart.
const DefaultMessage = restarter.DefaultMessage

func DefaultConfig() Config { return config.Default() }

func LoadConfig(path string) (Config, error) { return config.Load(path) }

// New assembles a Restarter from the config. The caller may override the
// exported fields (Out, Log, Store, Message) before calling Restart.
func New(cfg Config) *Restarter {
	spec := launcher.Spec{
		Name:    "scraper",
		Command: cfg.CommandLine(),
		WorkDir: cfg.WorkDir,
		Env:     env.Merge(cfg.Env),
		LogPath: cfg.ScrapeLogPath(),
		PIDFile: cfg.PIDFilePath(),
	}
	repo := gitops.New(cfg.WorkDir, cfg.Git.Remote, cfg.Git.Branch, cfg.Git.SudoReset)
	return &Restarter{
		Repo:       repo,
		Spec:       spec,
		EntryPath:  cfg.EntryPath(),
		ResetDepth: cfg.Git.ResetDepth,
		Log:        cfg.Log.New(),
	}
}

// NewHistoryStore opens the restart audit backend from the config DSN.
// Returns nil when history is disabled.
func NewHistoryStore(cfg Config) (HistoryStore, error) {
	dsn := cfg.HistoryDSN()
	if dsn == "" {
		return nil, nil
	}
	return factory.NewStoreFromDSN(dsn)
}

// ProcStatus is a point-in-time liveness report for the scraper.
type ProcStatus struct {
	Running    bool          `json:"running"`
	PID        int           `json:"pid,omitempty"`
	DetectedBy string        `json:"detected_by,omitempty"`
	LaunchedAt time.Time     `json:"launched_at,omitempty"`
	Uptime     time.Duration `json:"uptime,omitempty"`
	Command    string        `json:"command,omitempty"`
	LogPath    string        `json:"log_path,omitempty"`
}

// CheckStatus probes the scraper via the pidfile and, when configured, the
// status command. The launcher does not supervise the child, so this is a
// fresh detection every time.
func CheckStatus(cfg Config) (ProcStatus, error) {
	var st ProcStatus

	pidfile := cfg.PIDFilePath()
	if pidfile != "" {
		if pid, meta, err := launcher.ReadPIDFile(pidfile); err == nil {
			d := detector.PIDFileDetector{PIDFile: pidfile}
			alive, derr := d.Alive()
			if derr != nil {
				return st, derr
			}
			if alive {
				st.Running = true
				st.PID = pid
				st.DetectedBy = d.Describe()
				if meta != nil {
					st.LaunchedAt = meta.LaunchedAt
					st.Command = meta.Command
					st.LogPath = meta.LogPath
					if !meta.LaunchedAt.IsZero() {
						st.Uptime = time.Since(meta.LaunchedAt)
					}
				}
				return st, nil
			}
		}
	}

	if cfg.Status.Command != "" {
		d := detector.CommandDetector{Command: cfg.Status.Command}
		alive, err := d.Alive()
		if err != nil {
			return st, err
		}
		if alive {
			st.Running = true
			st.DetectedBy = d.Describe()
		}
	}
	return st, nil
}
