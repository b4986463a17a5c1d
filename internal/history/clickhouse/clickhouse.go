package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/scrapeops/scraperctl/internal/history"
)

// Store keeps restart records in ClickHouse via the official native
// client.
type Store struct {
	conn  driver.Conn
	table string
}

// New connects to addr ("host:port", native protocol) and ensures the
// table exists.
func New(addr, table string) (*Store, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: "default",
			Username: "default",
			Password: "",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to ClickHouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping ClickHouse: %w", err)
	}
	s := &Store{conn: conn, table: table}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		timestamp DateTime,
		host String,
		pid Int64,
		launched Bool,
		steps String
	) ENGINE = MergeTree() ORDER BY timestamp;`, s.table)
	return s.conn.Exec(ctx, stmt)
}

func (s *Store) Append(ctx context.Context, r history.Record) error {
	steps, err := history.MarshalSteps(r.Steps)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (timestamp, host, pid, launched, steps) VALUES (?, ?, ?, ?, ?)`, s.table)
	if err := s.conn.Exec(ctx, query, r.At.UTC(), r.Host, int64(r.PID), r.Launched, steps); err != nil {
		return fmt.Errorf("insert restart record: %w", err)
	}
	return nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT timestamp, host, pid, launched, steps FROM %s ORDER BY timestamp DESC LIMIT %d`, s.table, limit)
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []history.Record
	for rows.Next() {
		var r history.Record
		var pid int64
		var steps string
		if err := rows.Scan(&r.At, &r.Host, &pid, &r.Launched, &steps); err != nil {
			return nil, err
		}
		r.PID = int(pid)
		if r.Steps, err = history.UnmarshalSteps(steps); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
