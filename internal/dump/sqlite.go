package dump

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"dbsnap/internal/snap"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDumper implements the Dumper collaborator against a SQLite database.
// Each entity is one user table; payloads are newline-delimited JSON objects,
// one per row. Restore replaces the table's contents with the payload's rows.
type SQLiteDumper struct {
	db *sql.DB
}

// NewSQLiteDumper opens a SQLite database at path.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDumper(path string) (*SQLiteDumper, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Restores run per-table transactions on the worker pool; wait for locks
	// instead of failing with SQLITE_BUSY.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &SQLiteDumper{db: db}, nil
}

// NewSQLiteDumperFromDB wraps an existing database connection.
func NewSQLiteDumperFromDB(db *sql.DB) *SQLiteDumper {
	return &SQLiteDumper{db: db}
}

// Close closes the database connection.
func (d *SQLiteDumper) Close() error {
	return d.db.Close()
}

// ListEntities returns one entity per user table, ordered by name.
// SQLite's internal tables are excluded.
func (d *SQLiteDumper) ListEntities() ([]snap.Entity, error) {
	rows, err := d.db.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var entities []snap.Entity
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		entities = append(entities, snap.Entity{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return entities, nil
}

// Serialize dumps all rows of one table as newline-delimited JSON objects.
func (d *SQLiteDumper) Serialize(entity snap.Entity) ([]byte, int64, error) {
	rows, err := d.db.Query("SELECT * FROM " + quoteIdent(entity.Name))
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", entity.Name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, 0, fmt.Errorf("reading columns of %s: %w", entity.Name, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	var count int64

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, 0, fmt.Errorf("scanning row of %s: %w", entity.Name, err)
		}
		record := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
			} else {
				record[col] = values[i]
			}
		}
		if err := enc.Encode(record); err != nil {
			return nil, 0, fmt.Errorf("encoding row of %s: %w", entity.Name, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows of %s: %w", entity.Name, err)
	}

	return buf.Bytes(), count, nil
}

// Deserialize replaces the table's contents with the payload's rows.
// The delete and all inserts run in one transaction, so a malformed payload
// never leaves the table half-restored.
func (d *SQLiteDumper) Deserialize(entity snap.Entity, data []byte) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + quoteIdent(entity.Name)); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", entity.Name, err)
	}

	var count int64
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			return 0, fmt.Errorf("decoding row %d of %s: %w", count+1, entity.Name, err)
		}

		cols := make([]string, 0, len(record))
		for col := range record {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		quoted := make([]string, len(cols))
		placeholders := make([]string, len(cols))
		args := make([]any, len(cols))
		for i, col := range cols {
			quoted[i] = quoteIdent(col)
			placeholders[i] = "?"
			args[i] = record[col]
		}

		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(entity.Name),
			strings.Join(quoted, ", "),
			strings.Join(placeholders, ", "))
		if _, err := tx.Exec(stmt, args...); err != nil {
			return 0, fmt.Errorf("inserting row %d into %s: %w", count+1, entity.Name, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading payload for %s: %w", entity.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing restore of %s: %w", entity.Name, err)
	}
	return count, nil
}

// quoteIdent quotes a SQL identifier, escaping embedded double quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Compile-time check that SQLiteDumper implements snap.Dumper interface
var _ snap.Dumper = (*SQLiteDumper)(nil)
