package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type dialect struct {
	driver string
	schema string
	// bind returns the placeholder for the n-th argument, starting at 1.
	bind func(n int) string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS journal (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        ts INTEGER NOT NULL,
        kind TEXT NOT NULL,
        record TEXT NOT NULL
    );`,
		bind: func(int) string { return "?" },
	}
	postgresDialect = dialect{
		driver: "pgx",
		schema: `CREATE TABLE IF NOT EXISTS journal (
        seq BIGSERIAL PRIMARY KEY,
        id TEXT NOT NULL UNIQUE,
        ts BIGINT NOT NULL,
        kind TEXT NOT NULL,
        record TEXT NOT NULL
    );`,
		bind: func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// SQLStore persists records to a SQL database. Timestamps are stored in
// nanoseconds so that range filters are exact.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLStore, error) {
	return openSQL(sqliteDialect, path)
}

// NewPostgresStore connects to dsn through pgx and ensures schema.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	return openSQL(postgresDialect, dsn)
}

func openSQL(d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(d.schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLStore{db: db, d: d}, nil
}

// Append writes the record to the database.
func (s *SQLStore) Append(ctx context.Context, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO journal (id, ts, kind, record) VALUES (%s, %s, %s, %s)`,
			s.d.bind(1), s.d.bind(2), s.d.bind(3), s.d.bind(4)),
		rec.ID, rec.Timestamp.UnixNano(), string(rec.Kind), string(b))
	return err
}

// Query returns records matching q. The flight filter is applied after
// decoding.
func (s *SQLStore) Query(ctx context.Context, q Query) ([]Record, error) {
	var (
		args  []any
		where []string
	)
	if !q.Start.IsZero() {
		args = append(args, q.Start.UnixNano())
		where = append(where, "ts >= "+s.d.bind(len(args)))
	}
	if !q.End.IsZero() {
		args = append(args, q.End.UnixNano())
		where = append(where, "ts <= "+s.d.bind(len(args)))
	}
	if q.Kind != "" {
		args = append(args, string(q.Kind))
		where = append(where, "kind = "+s.d.bind(len(args)))
	}
	query := `SELECT record FROM journal`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var r Record
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		if q.match(r) {
			res = append(res, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return q.tail(res), nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }
