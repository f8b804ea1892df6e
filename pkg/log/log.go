// Package log is the zerolog logger shared by the speck-go commands. Events
// go to the console, or as JSON rows into an SQLite database that the
// `speck logs` command can query later.
package log

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	"speck-go/pkg/appdir"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

var (
	pkgLogger = zerolog.Nop()
	sink      *sqliteSink
	mu        sync.RWMutex

	// timeFieldFormat is fixed width and always UTC, so event times stored
	// as text sort in time order.
	timeFieldFormat = "2006-01-02T15:04:05.000000000Z07:00"

	// ErrNotInitialized is returned by the retrieval functions before Init.
	ErrNotInitialized = errors.New("log: logger not initialized, call log.Init() first")
)

// sqliteSink is an io.Writer storing each zerolog event as one row.
type sqliteSink struct {
	db   *sql.DB
	stmt *sql.Stmt
	mu   sync.Mutex
}

func openSink(dbPath string) (*sqliteSink, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode=wal&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %s: %w", dbPath, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db %s: %w", dbPath, err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			inserted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL,
			log_data TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_logs_json_time ON logs (json_extract(log_data, '$.time'));`,
	}
	for _, q := range schema {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare logs schema: %w", err)
		}
	}

	stmt, err := db.Prepare(`INSERT INTO logs (log_data) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	return &sqliteSink{db: db, stmt: stmt}, nil
}

func (s *sqliteSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.stmt.Exec(string(p)); err != nil {
		stdlog.Printf("ERROR writing log to SQLite: %v\n", err)
		return 0, err
	}
	return len(p), nil
}

func (s *sqliteSink) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.stmt.Close(), s.db.Close())
}

// SetStd logs human-readable lines to stderr.
func SetStd() {
	SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// SetOutput logs JSON events to w. Tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel sets the global minimum level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Init sends every event into the SQLite database dbFile. Relative names
// are resolved inside appdir.AppDir().
func Init(dbFile string) error {
	if dbFile == "" {
		return fmt.Errorf("logger needs an explicit dbFile")
	}
	dbPath := appdir.Resolve(dbFile)

	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		return fmt.Errorf("logger already initialized")
	}
	if err := appdir.EnsureDir(dbPath); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	s, err := openSink(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite writer: %w", err)
	}
	sink = s

	zerolog.TimeFieldFormat = timeFieldFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	pkgLogger = zerolog.New(sink).With().Timestamp().Logger()
	return nil
}

// Close flushes and detaches the SQLite sink. The logger becomes a no-op.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if sink == nil {
		return nil
	}
	s := sink
	sink = nil
	pkgLogger = zerolog.Nop()

	if err := s.close(); err != nil {
		return fmt.Errorf("error closing SQLite logger: %w", err)
	}
	return nil
}

func logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

func Debug() *zerolog.Event { return logger().Debug() }
func Info() *zerolog.Event  { return logger().Info() }
func Warn() *zerolog.Event  { return logger().Warn() }
func Error() *zerolog.Event { return logger().Error() }

// Printf sends an info event. Arguments are handled in the manner of
// fmt.Printf.
func Printf(format string, v ...any) {
	logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}
