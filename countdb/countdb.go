// Package countdb persists batch counting results into a SQLite
// database, one row per (batch, sentence, null count).
package countdb

import (
	"database/sql"
	"time"

	// sqlite3 driver is used by this store.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS counts (
	batch TEXT NOT NULL,
	sentence TEXT NOT NULL,
	spec TEXT NOT NULL,
	null_count INTEGER NOT NULL,
	linkages INTEGER NOT NULL,
	exhausted INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	PRIMARY KEY (batch, sentence, null_count)
);
`

// Result is one counted (sentence, null count) pair.
type Result struct {
	Batch     string
	Sentence  string
	Spec      string
	NullCount int
	Linkages  int64
	Exhausted bool
	Duration  time.Duration
}

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// WriteResults inserts the results in one transaction, replacing any
// prior rows for the same keys.
func (s *Store) WriteResults(results []Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO counts
		(batch, sentence, spec, null_count, linkages, exhausted, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range results {
		exhausted := 0
		if r.Exhausted {
			exhausted = 1
		}
		_, err := stmt.Exec(r.Batch, r.Sentence, r.Spec, r.NullCount,
			r.Linkages, exhausted, r.Duration.Milliseconds())
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	log.Debug().Int("rows", len(results)).Msg("wrote batch results")
	return tx.Commit()
}

// Counts returns the linkage counts recorded for one sentence of a
// batch, keyed by null count.
func (s *Store) Counts(batch, sentence string) (map[int]int64, error) {
	rows, err := s.db.Query(`
		SELECT null_count, linkages FROM counts WHERE batch = ? AND sentence = ?
	`, batch, sentence)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[int]int64{}
	for rows.Next() {
		var nc int
		var linkages int64
		if err := rows.Scan(&nc, &linkages); err != nil {
			return nil, err
		}
		counts[nc] = linkages
	}
	return counts, rows.Err()
}
