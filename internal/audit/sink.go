// Package audit is an optional, flag-gated observability sink. It has
// nothing to do with book state and is never required for correct
// pricing: spec.md's Non-goals exclude persisting book state across runs,
// but a record of what was emitted, for downstream analysis, is not book
// state. Adapted from the teacher's db.go, which persists orders/deals to
// Postgres via database/sql + github.com/lib/pq in exactly this
// batched-COPY-in-a-transaction shape.
package audit

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Record is one emitted report line, ready to batch-insert.
type Record struct {
	Timestamp  int64
	Side       byte
	Value      string
	Withdrawal bool
}

// Sink batches Records and flushes them to Postgres in bulk, the way the
// teacher's PersistDeals batches deal rows via pq.CopyIn rather than one
// INSERT per row.
type Sink struct {
	db      *sql.DB
	batch   []Record
	flushAt int
}

// Open connects to dsn and verifies the connection. An empty dsn is not
// special-cased here; the CLI disables auditing by not calling Open when
// no DSN is configured. A batchSize <= 0 falls back to 1000 rows.
func Open(dsn string, batchSize int) (*Sink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("audit: ping: %w", err)
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Sink{db: db, flushAt: batchSize}, nil
}

// ResetSchema (re)creates the audit_reports table, mirroring the teacher's
// ResetSchema DDL-drop-then-create style in db.go.
func (s *Sink) ResetSchema() error {
	const ddl = `
		DROP TABLE IF EXISTS audit_reports CASCADE;
		CREATE TABLE audit_reports (
			id serial primary key,
			ts bigint,
			side char(1),
			value varchar,
			withdrawal boolean
		) with (fillfactor=90);
	`
	_, err := s.db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("audit: reset schema: %w", err)
	}
	return nil
}

// Record buffers one report line, flushing automatically once the batch
// reaches flushAt rows.
func (s *Sink) Record(r Record) error {
	s.batch = append(s.batch, r)
	if len(s.batch) >= s.flushAt {
		return s.Flush()
	}
	return nil
}

// Flush bulk-inserts the buffered batch via pq.CopyIn, the same COPY-based
// bulk-load idiom as the teacher's PersistDeals/FillTestData.
func (s *Sink) Flush() error {
	if len(s.batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("audit: begin: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("audit_reports", "ts", "side", "value", "withdrawal"))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit: prepare copy: %w", err)
	}

	for _, r := range s.batch {
		if _, err := stmt.Exec(r.Timestamp, string(r.Side), r.Value, r.Withdrawal); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("audit: copy row: %w", err)
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit: flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit: close stmt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("audit: commit: %w", err)
	}

	s.batch = s.batch[:0]
	return nil
}

// Close flushes any remaining buffered rows and closes the database
// handle.
func (s *Sink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.db.Close()
}
