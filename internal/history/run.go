package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded CLI invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Command   string
	Check     bool
	Failed    int // entries with a failing status
	Results   []Entry
}

// Entry is the recorded outcome of one pair.
type Entry struct {
	Seq      int
	Strategy string
	Source   string
	Target   string
	Status   string
	Records  int
	Detail   string
}

// timeLayout is fixed width so stored timestamps sort as text in time
// order. RFC3339Nano drops trailing zeros and does not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// IDGenerator produces run ids.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WriteRun stores run and its entries in a single transaction. Writing a run
// whose id already exists is an error.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, command, check_mode, total, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.Command,
		boolToInt(run.Check),
		len(run.Results),
		run.Failed,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	for _, e := range run.Results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO results (run_id, seq, strategy, source, target, status, records, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID, e.Seq, e.Strategy, e.Source, e.Target, e.Status, e.Records, e.Detail,
		)
		if err != nil {
			return fmt.Errorf("write result %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first, each with its entries in
// batch order. A limit of zero or less returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, command, check_mode, failed
		FROM runs
		ORDER BY started_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			startedAt string
			check     int
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.Command, &check, &run.Failed); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse started_at %q: %w", startedAt, err)
		}
		run.Check = check != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	// Single connection: the runs cursor must be closed before loading entries.
	for i := range runs {
		entries, err := s.entries(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Results = entries
	}
	return runs, nil
}

// entries loads the result rows of one run in batch order.
func (s *Store) entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, strategy, source, target, status, records, detail
		FROM results
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Strategy, &e.Source, &e.Target, &e.Status, &e.Records, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
