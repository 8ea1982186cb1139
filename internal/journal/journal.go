package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fileutils/pkg/fileutils"
)

// DB records fileutils operations in SQLite
type DB struct {
	db *sql.DB
}

// Record is a single journaled operation
type Record struct {
	ID           int64
	Timestamp    time.Time
	Op           string
	Paths        []string
	Noop         bool
	Bytes        int64
	DurationMs   int64
	ErrorKind    string
	ErrorMessage string
}

// Failed reports whether the operation returned an error
func (r Record) Failed() bool {
	return r.ErrorKind != ""
}

// Open opens (creating if needed) the journal database at dbPath
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	// _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Ping does not create the file; a query does
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize journal (check permissions on %s): %w", dbPath, err)
	}

	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	j := &DB{db: db}
	if err = j.initSchema(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		op TEXT NOT NULL,
		paths TEXT NOT NULL,
		noop INTEGER NOT NULL DEFAULT 0,
		bytes INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		error_kind TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_timestamp ON operations(timestamp);
	CREATE INDEX IF NOT EXISTS idx_op ON operations(op);
	CREATE INDEX IF NOT EXISTS idx_error_kind ON operations(error_kind);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// Observe inserts ev; it implements fileutils.Observer
func (j *DB) Observe(ev fileutils.Event) error {
	var errMsg string
	if ev.Err != nil {
		errMsg = ev.Err.Error()
	}

	query := `
	INSERT INTO operations (
		timestamp, op, paths, noop, bytes, duration_ms, error_kind, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.Exec(
		query,
		time.Now(),
		ev.Op,
		encodePaths(ev.Paths),
		ev.Noop,
		ev.Bytes,
		ev.Duration.Milliseconds(),
		fileutils.Kind(ev.Err),
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("journal %s: %w", ev.Op, err)
	}
	return nil
}

// Paths are stored newline-separated; newlines in paths are rare enough
// that they are replaced rather than escaped.
func encodePaths(paths []string) string {
	clean := make([]string, len(paths))
	for i, p := range paths {
		clean[i] = strings.ReplaceAll(p, "\n", "?")
	}
	return strings.Join(clean, "\n")
}

func decodePaths(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Close closes the database connection
func (j *DB) Close() error {
	return j.db.Close()
}

// Vacuum optimizes the database
func (j *DB) Vacuum() error {
	_, err := j.db.Exec("VACUUM")
	return err
}
