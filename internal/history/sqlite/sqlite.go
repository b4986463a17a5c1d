package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/scrapeops/scraperctl/internal/history"
)

// Store keeps restart records in a SQLite database. This is the default
// backend: embedded, no server, lives next to the checkout.
type Store struct {
	db *sql.DB
}

// New opens (and creates if needed) the database at the DSN.
// Accepted forms: "sqlite:///path/to/file.db", "sqlite://:memory:",
// "/path/to/file.db", ":memory:".
func New(dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty SQLite DSN")
	}
	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = dsn[len("sqlite://"):]
	}
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS restart_history(
		timestamp TIMESTAMP NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		host TEXT NOT NULL,
		pid INTEGER NOT NULL,
		launched INTEGER NOT NULL,
		steps TEXT
	);`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *Store) Append(ctx context.Context, r history.Record) error {
	steps, err := history.MarshalSteps(r.Steps)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO restart_history(timestamp, host, pid, launched, steps)
		VALUES(?, ?, ?, ?, ?);`,
		r.At.UTC(), r.Host, r.PID, boolInt(r.Launched), steps)
	return err
}

func (s *Store) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, host, pid, launched, steps
		FROM restart_history ORDER BY timestamp DESC LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []history.Record
	for rows.Next() {
		var r history.Record
		var launched int
		var steps sql.NullString
		if err := rows.Scan(&r.At, &r.Host, &r.PID, &launched, &steps); err != nil {
			return nil, err
		}
		r.Launched = launched != 0
		if r.Steps, err = history.UnmarshalSteps(steps.String); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
