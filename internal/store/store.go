// Package store provides a SQLite-backed copy of benchmarking records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/benchavg/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps a SQLite database holding benchmarking records.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing database for reading. Unlike Open it never
// creates the file or its schema.
func OpenReadOnly(dbPath string) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ImportInfo describes the source file of the last import.
type ImportInfo struct {
	SourcePath  string
	MtimeNs     int64
	SizeBytes   int64
	RecordCount int
	ImportedAt  time.Time
}

// ReplaceRecords swaps the stored records for the given set, preserving
// slice order, and records where they came from.
func (s *Store) ReplaceRecords(ctx context.Context, records []model.Record, src ImportInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM benchmarking_results"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO benchmarking_results
		(position, request_id, prompt_text, generated_text,
		 token_count, time_to_first_token, time_per_output_token, total_generation_time,
		 timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			i, r.RequestID, r.PromptText, r.GeneratedText,
			nullFloat(r.TokenCount), nullFloat(r.TimeToFirstToken),
			nullFloat(r.TimePerOutputToken), nullFloat(r.TotalGenerationTime),
			r.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO import_tracker
		(source_path, mtime_ns, size_bytes, record_count, imported_at)
		VALUES (?, ?, ?, ?, ?)`,
		src.SourcePath, src.MtimeNs, src.SizeBytes, len(records),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadRecords reads every stored record in insertion order.
func (s *Store) LoadRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		request_id, prompt_text, generated_text,
		token_count, time_to_first_token, time_per_output_token, total_generation_time,
		timestamp
		FROM benchmarking_results ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := []model.Record{}
	for rows.Next() {
		var r model.Record
		var tc, ttft, tpot, total sql.NullFloat64
		if err := rows.Scan(
			&r.RequestID, &r.PromptText, &r.GeneratedText,
			&tc, &ttft, &tpot, &total,
			&r.Timestamp,
		); err != nil {
			return nil, err
		}
		r.TokenCount = floatPtr(tc)
		r.TimeToFirstToken = floatPtr(ttft)
		r.TimePerOutputToken = floatPtr(tpot)
		r.TotalGenerationTime = floatPtr(total)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM benchmarking_results").Scan(&count)
	return count, err
}

// LastImport returns the most recent import, or ok=false if none happened.
func (s *Store) LastImport(ctx context.Context) (ImportInfo, bool, error) {
	var info ImportInfo
	var importedAt string
	err := s.db.QueryRowContext(ctx, `SELECT source_path, mtime_ns, size_bytes, record_count, imported_at
		FROM import_tracker ORDER BY imported_at DESC LIMIT 1`).
		Scan(&info.SourcePath, &info.MtimeNs, &info.SizeBytes, &info.RecordCount, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ImportInfo{}, false, nil
	}
	if err != nil {
		return ImportInfo{}, false, err
	}
	info.ImportedAt, _ = time.Parse(time.RFC3339, importedAt)
	return info, true, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return model.Float(n.Float64)
}
