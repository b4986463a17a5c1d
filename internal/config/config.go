package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/scrapeops/scraperctl/internal/logger"
)

// Config is the top-level TOML structure. The defaults reproduce the
// original restart script verbatim: reset one commit, pull origin, chmod
// shop_scrape.py, clear scrape.log, launch ./shop_scrape.py detached.
type Config struct {
	WorkDir   string   `toml:"workdir" mapstructure:"workdir"`
	Entry     string   `toml:"entry" mapstructure:"entry"`
	Command   string   `toml:"command" mapstructure:"command"` // overrides "./<entry>"
	ScrapeLog string   `toml:"scrape_log" mapstructure:"scrape_log"`
	PIDFile   string   `toml:"pidfile" mapstructure:"pidfile"`
	Env       []string `toml:"env" mapstructure:"env"`

	Git     GitConfig     `toml:"git" mapstructure:"git"`
	Status  StatusConfig  `toml:"status" mapstructure:"status"`
	History HistoryConfig `toml:"history" mapstructure:"history"`
	Log     logger.Config `toml:"log" mapstructure:"log"`
}

type GitConfig struct {
	Remote     string `toml:"remote" mapstructure:"remote"`
	Branch     string `toml:"branch" mapstructure:"branch"`
	ResetDepth int    `toml:"reset_depth" mapstructure:"reset_depth"`
	SudoReset  bool   `toml:"sudo_reset" mapstructure:"sudo_reset"`
}

type StatusConfig struct {
	// Command is an optional liveness probe that exits zero while the
	// scraper runs, used in addition to the pidfile.
	Command string `toml:"command" mapstructure:"command"`
}

type HistoryConfig struct {
	// DSN selects the restart audit backend (sqlite path, postgres:// or
	// clickhouse:// URL). Empty disables recording.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// Default returns the configuration equivalent to running the original
// script in the current directory.
func Default() Config {
	return Config{
		WorkDir:   ".",
		Entry:     "shop_scrape.py",
		ScrapeLog: "scrape.log",
		PIDFile:   ".scraperctl/scraper.pid",
		Git: GitConfig{
			Remote:     "origin",
			ResetDepth: 1,
			SudoReset:  true,
		},
		History: HistoryConfig{DSN: ".scraperctl/history.db"},
	}
}

// Load reads a TOML config file on top of the defaults. An empty path
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.WorkDir) {
		// Relative workdir is anchored at the config file's directory so
		// invocations behave the same from any cwd.
		cfg.WorkDir = filepath.Join(filepath.Dir(path), cfg.WorkDir)
	}
	return cfg, nil
}

// EntryPath is the entry script location, resolved against the workdir.
func (c Config) EntryPath() string { return c.resolve(c.Entry) }

// ScrapeLogPath is the scraper's combined output log, resolved against the
// workdir.
func (c Config) ScrapeLogPath() string { return c.resolve(c.ScrapeLog) }

// PIDFilePath is the pidfile location, resolved against the workdir.
// Empty when pidfile tracking is disabled.
func (c Config) PIDFilePath() string {
	if c.PIDFile == "" {
		return ""
	}
	return c.resolve(c.PIDFile)
}

// CommandLine is the command used to launch the scraper. Defaults to
// executing the entry script directly, which is why the chmod step exists.
func (c Config) CommandLine() string {
	if c.Command != "" {
		return c.Command
	}
	return "./" + c.Entry
}

// HistoryDSN resolves a file-backed DSN against the workdir; URL-style
// DSNs pass through untouched.
func (c Config) HistoryDSN() string {
	dsn := strings.TrimSpace(c.History.DSN)
	if dsn == "" || strings.Contains(dsn, "://") || dsn == ":memory:" {
		return dsn
	}
	return c.resolve(dsn)
}

func (c Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}
