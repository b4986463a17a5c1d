package clickhouse

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/scrapeops/scraperctl/internal/history"
)

// setupClickHouseContainer starts a ClickHouse container for testing
func setupClickHouseContainer(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	clickHouseContainer, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24.3.2.23",
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		clickhouse.WithDatabase("default"),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/ping").
				WithPort("8123/tcp").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start ClickHouse container: %v", err)
	}

	host, err := clickHouseContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := clickHouseContainer.MappedPort(ctx, "9000")
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	addr := host + ":" + port.Port()
	return clickHouseContainer, addr
}

func TestClickHouseStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	clickHouseContainer, addr := setupClickHouseContainer(ctx, t)
	defer func() {
		if err := clickHouseContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate ClickHouse container: %v", err)
		}
	}()

	store, err := New(addr, "restart_history")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	}()

	base := time.Now().UTC().Truncate(time.Second)
	records := []history.Record{
		{
			At:       base,
			Host:     "scrape-host",
			PID:      7001,
			Launched: true,
			Steps:    []history.Step{{Name: "pull", Output: "Already up to date."}},
		},
		{
			At:       base.Add(time.Second),
			Host:     "scrape-host",
			PID:      0,
			Launched: false,
			Steps:    []history.Step{{Name: "launch", Error: "permission denied"}},
		},
	}
	for i, r := range records {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Failed to append record %d: %v", i, err)
		}
	}

	// Wait a moment for data to be written
	time.Sleep(100 * time.Millisecond)

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to read recent records: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if got[0].PID != 0 || got[1].PID != 7001 {
		t.Errorf("Records not ordered newest first: %d, %d", got[0].PID, got[1].PID)
	}
	if failed := got[0].Failed(); len(failed) != 1 || failed[0] != "launch" {
		t.Errorf("Failed step list wrong: %v", failed)
	}

	t.Log("ClickHouse store integration test completed successfully")
}

func TestClickHouseStore_ConnectionError(t *testing.T) {
	if _, err := New("invalid-host:9000", "restart_history"); err == nil {
		t.Error("Expected error with invalid connection, got nil")
	}
}
