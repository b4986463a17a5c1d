package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GlobalFlags holds the persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
}

// StatusFlags holds flags for the status command.
type StatusFlags struct {
	JSON bool
}

// HistoryFlags holds flags for the history command.
type HistoryFlags struct {
	Limit int
	JSON  bool
}

func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	statusFlags := &StatusFlags{}
	historyFlags := &HistoryFlags{}

	c := command{}

	root := &cobra.Command{
		Use:   "scraperctl",
		Short: "Relaunch and inspect the shop scraping worker",
		Long: `Scraperctl redeploys the shop scraping worker: it rolls the checkout
back one commit, pulls upstream, marks the entry script executable,
clears the previous log and launches the scraper detached from the
terminal.

Examples:
  scraperctl restart                       # restart using built-in defaults
  scraperctl restart --config=scraper.toml
  scraperctl status
  scraperctl history --limit=10`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "path to TOML config file (optional)")

	root.AddCommand(
		createRestartCommand(c, globalFlags),
		createStatusCommand(c, globalFlags, statusFlags),
		createHistoryCommand(c, globalFlags, historyFlags),
	)
	return root
}

func createRestartCommand(c command, globalFlags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the scraping worker",
		Long: `Run the restart sequence: hard reset, pull, chmod, clear log, launch
detached. No step failure stops the sequence, and the command returns as
soon as the launch is issued; it never waits for the scraper.

Examples:
  scraperctl restart
  scraperctl restart --config=/opt/shop-scraper/scraper.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Restart(globalFlags.ConfigPath)
		},
	}
}

func createStatusCommand(c command, globalFlags *GlobalFlags, flags *StatusFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the scraper is running",
		Long: `Probe the scraper via its pidfile (and the optional status command
from the config) and report PID and uptime.

Examples:
  scraperctl status
  scraperctl status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Status(globalFlags.ConfigPath, *flags)
		},
	}
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "output as JSON")
	return cmd
}

func createHistoryCommand(c command, globalFlags *GlobalFlags, flags *HistoryFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent restart invocations",
		Long: `List recent restart records from the configured history backend
(SQLite by default; PostgreSQL and ClickHouse for central aggregation).

Examples:
  scraperctl history
  scraperctl history --limit=50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.History(globalFlags.ConfigPath, *flags)
		},
	}
	cmd.Flags().IntVar(&flags.Limit, "limit", 20, "maximum records to list")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "output as JSON")
	return cmd
}
