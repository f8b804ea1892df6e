package log

import (
	"database/sql"
	"fmt"
	stdlog "log"
	"slices"
	"time"
)

// DefaultLimit caps range queries that pass limit <= 0.
const DefaultLimit = 100

// Entry is one stored log event.
type Entry struct {
	ID         int64
	InsertedAt time.Time
	LogData    string // raw JSON
}

func handle() (*sql.DB, error) {
	mu.RLock()
	defer mu.RUnlock()
	if sink == nil {
		return nil, ErrNotInitialized
	}
	return sink.db, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFieldFormat)
}

func parseDBTimestamp(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339, time.RFC3339Nano, "2006-01-02 15:04:05.999"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	stdlog.Printf("Warning: Could not parse inserted_at timestamp '%s'", ts)
	return time.Time{}
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var insertedAt string
		if err := rows.Scan(&e.ID, &insertedAt, &e.LogData); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		e.InsertedAt = parseDBTimestamp(insertedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log rows: %w", err)
	}
	return entries, nil
}

// GetLastNLogs returns the n most recent entries, oldest first.
func GetLastNLogs(n int) ([]Entry, error) {
	db, err := handle()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []Entry{}, nil
	}
	rows, err := db.Query(`SELECT id, inserted_at, log_data FROM logs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query last %d logs: %w", n, err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// GetLogsBetween returns entries whose event time lies in [start, end],
// ordered by event time.
func GetLogsBetween(start, end time.Time, limit int) ([]Entry, error) {
	db, err := handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := db.Query(`
		SELECT id, inserted_at, log_data
		FROM logs
		WHERE json_extract(log_data, '$.time') >= ? AND json_extract(log_data, '$.time') <= ?
		ORDER BY json_extract(log_data, '$.time') ASC, id ASC
		LIMIT ?`,
		formatTime(start), formatTime(end), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs between %s and %s: %w", start, end, err)
	}
	return scanEntries(rows)
}

// GetLogsSince is GetLogsBetween(start, now, limit).
func GetLogsSince(start time.Time, limit int) ([]Entry, error) {
	return GetLogsBetween(start, time.Now(), limit)
}
