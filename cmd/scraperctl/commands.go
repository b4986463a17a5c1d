package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/scrapeops/scraperctl"
)

// command implements the CLI operations on top of the scraperctl facade.
type command struct{}

// Restart runs the full restart sequence. Step failures end up in the
// step log and the history record, not in this command's exit status: the
// sequence has no abort path and the invoker exits right after the launch
// is issued.
func (c command) Restart(configPath string) error {
	cfg, err := scraperctl.LoadConfig(configPath)
	if err != nil {
		return err
	}
	r := scraperctl.New(cfg)

	store, err := scraperctl.NewHistoryStore(cfg)
	if err != nil {
		// History is an audit convenience; a broken backend must not block
		// the relaunch.
		r.Log.Warn("open history store", "err", err)
	} else if store != nil {
		r.Store = store
		defer func() { _ = store.Close() }()
	}

	r.Restart(context.Background())
	return nil
}

func (c command) Status(configPath string, flags StatusFlags) error {
	cfg, err := scraperctl.LoadConfig(configPath)
	if err != nil {
		return err
	}
	st, err := scraperctl.CheckStatus(cfg)
	if err != nil {
		return err
	}

	if flags.JSON {
		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("RUNNING", "PID", "UPTIME", "DETECTED BY", "LOG")
	table.Append(
		fmt.Sprintf("%v", st.Running),
		pidCell(st.PID),
		uptimeCell(st.Uptime),
		dashWhenEmpty(st.DetectedBy),
		dashWhenEmpty(st.LogPath),
	)
	table.Render()
	return nil
}

func (c command) History(configPath string, flags HistoryFlags) error {
	cfg, err := scraperctl.LoadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := scraperctl.NewHistoryStore(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	if store == nil {
		fmt.Println("History is disabled (empty history.dsn)")
		return nil
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(context.Background(), flags.Limit)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}

	if flags.JSON {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No restarts recorded")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("TIME", "HOST", "PID", "LAUNCHED", "FAILED STEPS")
	for _, r := range records {
		failed := strings.Join(r.Failed(), ",")
		table.Append(
			r.At.Local().Format(time.DateTime),
			r.Host,
			pidCell(r.PID),
			fmt.Sprintf("%v", r.Launched),
			dashWhenEmpty(failed),
		)
	}
	table.Render()
	fmt.Printf("\nTotal restarts shown: %d\n", len(records))
	return nil
}

func pidCell(pid int) string {
	if pid <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", pid)
}

func uptimeCell(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Truncate(time.Second).String()
}

func dashWhenEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
