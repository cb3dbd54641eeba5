// Package store archives collected records in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"finwire/internal/models"
)

// Row is an archived record plus its collection time.
type Row struct {
	ID          int64
	Source      string
	Timestamp   string
	Headline    string
	Snippet     string
	Link        sql.NullString
	CollectedAt time.Time
}

// Open opens (creating if needed) the archive at dbPath.
func Open(dbPath string) (*sql.DB, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("empty database path")
	}
	db, err := sql.Open("sqlite", "file:"+dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// InitSchema ensures the records table exists.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            source TEXT NOT NULL,
            timestamp TEXT NOT NULL,
            headline TEXT NOT NULL,
            snippet TEXT,
            link TEXT,
            collected_at TIMESTAMP NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_records_collected_at ON records(collected_at)`,
		`CREATE INDEX IF NOT EXISTS idx_records_source ON records(source)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// InsertRecords appends one run's dataset, all rows stamped with the
// same collection time. Returns the number of rows written.
func InsertRecords(ctx context.Context, db *sql.DB, recs []models.Record, collectedAt time.Time) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
        (source, timestamp, headline, snippet, link, collected_at)
        VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	ts := collectedAt.UTC().Format(time.RFC3339)
	n := 0
	for _, r := range recs {
		if _, err := stmt.ExecContext(ctx, string(r.Source), r.Timestamp, r.Headline, r.Snippet, nullIfEmpty(r.Link), ts); err != nil {
			return n, err
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// GetSince returns rows collected at or after since, newest first,
// optionally filtered by source. limit <= 0 means no limit.
func GetSince(ctx context.Context, db *sql.DB, since time.Time, source string, limit int) ([]Row, error) {
	q := `SELECT id, source, timestamp, headline, snippet, link, collected_at
FROM records WHERE datetime(collected_at) >= datetime(?)`
	args := []any{since.UTC().Format(time.RFC3339)}
	if source != "" {
		q += " AND source = ?"
		args = append(args, source)
	}
	q += " ORDER BY datetime(collected_at) DESC, id DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		var collected string
		if err := rows.Scan(&r.ID, &r.Source, &r.Timestamp, &r.Headline, &r.Snippet, &r.Link, &collected); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, collected); err == nil {
			r.CollectedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
