// Package analytics persists AI interactions in zoe's local database so
// cache effectiveness can be inspected across sessions.
package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"zoesolar/zoe/internal/database"
)

// Recorder accepts interactions. Services depend on this rather than on the
// full repository.
type Recorder interface {
	Save(interaction *Interaction) error
}

// Repository defines the persistence interface for interactions.
type Repository interface {
	Recorder
	List(limit int) ([]Interaction, error)
	ListByKind(kind string, limit int) ([]Interaction, error)
	Summary(since time.Time) ([]KindSummary, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// Open creates or opens the analytics repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS interactions (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            kind        TEXT    NOT NULL,
            cache_hit   INTEGER NOT NULL DEFAULT 0,
            duration_ms INTEGER NOT NULL DEFAULT 0,
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_interactions_timestamp ON interactions(timestamp);
        CREATE INDEX IF NOT EXISTS idx_interactions_kind ON interactions(kind);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("analytics: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new interaction, assigning its ID and, if unset, its
// timestamp.
func (r *SQLiteRepository) Save(in *Interaction) error {
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO interactions (timestamp, kind, cache_hit, duration_ms, outcome, detail)
        VALUES (?, ?, ?, ?, ?, ?)`,
		database.FormatTime(in.Timestamp), in.Kind, boolToInt(in.CacheHit), in.DurationMs, in.Outcome, in.Detail,
	)
	if err != nil {
		return fmt.Errorf("analytics: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("analytics: failed to get last insert ID: %w", err)
	}
	in.ID = id
	return nil
}

// List returns the most recent n interactions.
func (r *SQLiteRepository) List(limit int) ([]Interaction, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, kind, cache_hit, duration_ms, outcome, detail
        FROM interactions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByKind returns the most recent n interactions of one kind.
func (r *SQLiteRepository) ListByKind(kind string, limit int) ([]Interaction, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, kind, cache_hit, duration_ms, outcome, detail
        FROM interactions WHERE kind = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Summary aggregates interactions recorded at or after since, per kind.
func (r *SQLiteRepository) Summary(since time.Time) ([]KindSummary, error) {
	rows, err := r.db.Query(`
        SELECT kind,
               COUNT(*),
               COALESCE(SUM(cache_hit), 0),
               COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
               COALESCE(AVG(duration_ms), 0)
        FROM interactions WHERE timestamp >= ?
        GROUP BY kind ORDER BY kind`, OutcomeError, database.FormatTime(since))
	if err != nil {
		return nil, fmt.Errorf("analytics: query failed: %w", err)
	}
	defer rows.Close()

	var summaries []KindSummary
	for rows.Next() {
		var s KindSummary
		if err := rows.Scan(&s.Kind, &s.Count, &s.CacheHits, &s.Errors, &s.AvgDurationMs); err != nil {
			return nil, fmt.Errorf("analytics: scan failed: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Prune deletes interactions older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := database.FormatTime(time.Now().Add(-olderThan))
	result, err := r.db.Exec(`DELETE FROM interactions WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("analytics: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Interaction, error) {
	var out []Interaction
	for rows.Next() {
		var in Interaction
		var timestampStr string
		var hit int64
		err := rows.Scan(&in.ID, &timestampStr, &in.Kind, &hit, &in.DurationMs, &in.Outcome, &in.Detail)
		if err != nil {
			return nil, fmt.Errorf("analytics: scan failed: %w", err)
		}
		in.CacheHit = hit != 0
		in.Timestamp, _ = database.ParseTime(timestampStr)
		out = append(out, in)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
