package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
	ErrBadRunID     = errors.New("run id must be lowercase hex and dashes")
)

type Run struct {
	ID       string
	Language string
	// Source is the file path, or "-" for stdin and "arg" for a
	// command-line argument.
	Source    string
	Input     string
	Outcome   string
	Message   string
	Nodes     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// ShortID is the first eight characters of the run id.
func (r Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// InsertRun stores r, assigning a new UUID when r.ID is empty.
func InsertRun(sqlDB *sql.DB, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := sqlDB.Exec(`
		INSERT INTO runs (id, language, source, input, outcome, message, nodes, elapsed_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Language, r.Source, r.Input, r.Outcome, r.Message, r.Nodes, r.Elapsed.Microseconds())
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return r.ID, nil
}

type Filter struct {
	Outcome  string
	Language string
	Limit    int
}

const runColumns = `id, language, source, input, outcome, message, nodes, elapsed_us,
	strftime('%Y-%m-%dT%H:%M:%SZ', created_at)`

// ListRuns returns runs newest first.
func ListRuns(sqlDB *sql.DB, f Filter) ([]Run, error) {
	var where []string
	var args []any
	if f.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, f.Outcome)
	}
	if f.Language != "" {
		where = append(where, "language = ?")
		args = append(args, f.Language)
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := sqlDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// FindRun looks up a run by full id or unique prefix. The prefix is compared
// byte for byte.
func FindRun(sqlDB *sql.DB, prefix string) (Run, error) {
	if prefix == "" || strings.Trim(prefix, "0123456789abcdef-") != "" {
		return Run{}, fmt.Errorf("%q: %w", prefix, ErrBadRunID)
	}
	rows, err := sqlDB.Query(`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return Run{}, fmt.Errorf("querying run %s: %w", prefix, err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterating runs: %w", err)
	}

	switch len(found) {
	case 0:
		return Run{}, fmt.Errorf("%s: %w", prefix, ErrRunNotFound)
	case 1:
		return found[0], nil
	}
	return Run{}, fmt.Errorf("%s: %w", prefix, ErrAmbiguousRun)
}

type OutcomeCount struct {
	Language string
	Outcome  string
	Count    int
}

// CountRuns groups runs by language and outcome.
func CountRuns(sqlDB *sql.DB) ([]OutcomeCount, error) {
	rows, err := sqlDB.Query(`
		SELECT language, outcome, COUNT(*) AS cnt
		FROM runs
		GROUP BY language, outcome
		ORDER BY language, CASE outcome WHEN 'ok' THEN 0 ELSE 1 END, outcome
	`)
	if err != nil {
		return nil, fmt.Errorf("counting runs: %w", err)
	}
	defer rows.Close()

	var out []OutcomeCount
	for rows.Next() {
		var c OutcomeCount
		if err := rows.Scan(&c.Language, &c.Outcome, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var elapsed int64
	var created string
	if err := rows.Scan(&r.ID, &r.Language, &r.Source, &r.Input, &r.Outcome, &r.Message, &r.Nodes, &elapsed, &created); err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}
	r.Elapsed = time.Duration(elapsed) * time.Microsecond
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: bad created_at %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t
	return r, nil
}
