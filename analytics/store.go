package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	_ "modernc.org/sqlite"
)

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			referrer TEXT,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// RecordVisit stores one page view and bumps the Prometheus counter.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits (path, ip_hash, referrer, timestamp) VALUES (?, ?, ?, ?)`,
		v.Path, v.IPHash, v.Referrer, v.Timestamp)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	pageViews.WithLabelValues(v.Path).Inc()
	return nil
}

// StatsByPath returns view counts per path since the given time, most viewed
// first.
func (s *Store) StatsByPath(since time.Time) ([]PathStat, error) {
	rows, err := s.db.Query(`SELECT path, COUNT(*) FROM visits WHERE timestamp >= ? GROUP BY path ORDER BY COUNT(*) DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PathStat
	for rows.Next() {
		var st PathStat
		if err := rows.Scan(&st.Path, &st.Views); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DeleteOlderThan removes visits before the cutoff and reports how many.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetSetting reads a settings value, returning "" when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting upserts a settings value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// StartCleanupScheduler prunes visits older than retentionDays on the given
// interval. The returned function stops the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) (func(), error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			cutoff := time.Now().AddDate(0, 0, -retentionDays)
			if _, err := s.DeleteOlderThan(cutoff); err != nil {
				fmt.Fprintf(os.Stderr, "analytics cleanup: %v\n", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	sched.Start()
	return func() { _ = sched.Shutdown() }, nil
}
