package journal

import (
	"database/sql"
	"time"
)

const selectColumns = `
	SELECT id, timestamp, op, paths, noop, bytes, duration_ms, error_kind, error_message
	FROM operations
`

// Recent returns the N most recent operations
func (j *DB) Recent(limit int) ([]Record, error) {
	return j.queryRecords(selectColumns+`ORDER BY id DESC LIMIT ?`, limit)
}

// ByOp returns operations of one kind, newest first
func (j *DB) ByOp(op string, limit int) ([]Record, error) {
	return j.queryRecords(selectColumns+`WHERE op = ? ORDER BY id DESC LIMIT ?`, op, limit)
}

// ByPath returns operations whose paths match a LIKE pattern
func (j *DB) ByPath(pattern string, limit int) ([]Record, error) {
	return j.queryRecords(selectColumns+`WHERE paths LIKE ? ORDER BY id DESC LIMIT ?`, pattern, limit)
}

// Failures returns the N most recent failed operations
func (j *DB) Failures(limit int) ([]Record, error) {
	return j.queryRecords(selectColumns+`WHERE error_kind != '' ORDER BY id DESC LIMIT ?`, limit)
}

// Between returns operations within a time range
func (j *DB) Between(start, end time.Time) ([]Record, error) {
	return j.queryRecords(selectColumns+`WHERE timestamp BETWEEN ? AND ? ORDER BY id DESC`, start, end)
}

// Stats summarizes the journal
type Stats struct {
	Total       int64
	Failed      int64
	Noop        int64
	BytesCopied int64
	ByOp        map[string]int64
}

// Stats returns aggregate counts over the whole journal
func (j *DB) Stats() (Stats, error) {
	s := Stats{ByOp: make(map[string]int64)}

	err := j.db.QueryRow(`
	SELECT COUNT(*),
	       COALESCE(SUM(CASE WHEN error_kind != '' THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(noop), 0),
	       COALESCE(SUM(bytes), 0)
	FROM operations
	`).Scan(&s.Total, &s.Failed, &s.Noop, &s.BytesCopied)
	if err != nil {
		return s, err
	}

	rows, err := j.db.Query(`SELECT op, COUNT(*) FROM operations GROUP BY op`)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var op string
		var count int64
		if err := rows.Scan(&op, &count); err != nil {
			return s, err
		}
		s.ByOp[op] = count
	}
	return s, rows.Err()
}

func (j *DB) queryRecords(query string, args ...interface{}) ([]Record, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var paths string
		var noop sql.NullBool
		if err := rows.Scan(
			&r.ID,
			&r.Timestamp,
			&r.Op,
			&paths,
			&noop,
			&r.Bytes,
			&r.DurationMs,
			&r.ErrorKind,
			&r.ErrorMessage,
		); err != nil {
			return nil, err
		}
		r.Paths = decodePaths(paths)
		r.Noop = noop.Bool
		records = append(records, r)
	}
	return records, rows.Err()
}
