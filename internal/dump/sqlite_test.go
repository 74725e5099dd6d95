package dump

import (
	"path/filepath"
	"strings"
	"testing"

	"dbsnap/internal/snap"
)

func newTestDumper(t *testing.T) *SQLiteDumper {
	t.Helper()

	d, err := NewSQLiteDumper(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteDumper() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })

	stmts := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, balance REAL)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER, note TEXT)`,
		`INSERT INTO users VALUES (1, 'alice', 10.5), (2, 'bob', NULL)`,
		`INSERT INTO orders VALUES (1, 1, 'first')`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return d
}

func TestSQLiteDumper_ListEntities(t *testing.T) {
	d := newTestDumper(t)

	entities, err := d.ListEntities()
	if err != nil {
		t.Fatalf("ListEntities() error = %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("entities = %v, want 2", entities)
	}
	// Ordered by name.
	if entities[0].Name != "orders" || entities[1].Name != "users" {
		t.Errorf("entities = %v", entities)
	}
}

func TestSQLiteDumper_Serialize(t *testing.T) {
	d := newTestDumper(t)

	data, rows, err := d.Serialize(snap.Entity{Name: "users"})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("payload has %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"alice"`) {
		t.Errorf("first line = %q", lines[0])
	}

	t.Run("empty table", func(t *testing.T) {
		if _, err := d.db.Exec(`CREATE TABLE empty (id INTEGER)`); err != nil {
			t.Fatalf("creating table: %v", err)
		}
		data, rows, err := d.Serialize(snap.Entity{Name: "empty"})
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if rows != 0 || len(data) != 0 {
			t.Errorf("rows = %d, payload = %q", rows, data)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		if _, _, err := d.Serialize(snap.Entity{Name: "ghost"}); err == nil {
			t.Error("Serialize() error = nil for unknown table")
		}
	})
}

func TestSQLiteDumper_RoundTrip(t *testing.T) {
	d := newTestDumper(t)

	data, _, err := d.Serialize(snap.Entity{Name: "users"})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Diverge from the dump, then restore it.
	if _, err := d.db.Exec(`DELETE FROM users; INSERT INTO users VALUES (9, 'mallory', 0)`); err != nil {
		t.Fatalf("mutating table: %v", err)
	}

	rows, err := d.Deserialize(snap.Entity{Name: "users"}, data)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}

	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users WHERE name IN ('alice', 'bob')`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Errorf("restored %d of 2 original rows", count)
	}
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users WHERE name = 'mallory'`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 0 {
		t.Error("diverged row survived the restore")
	}
}

func TestSQLiteDumper_Deserialize_MalformedPayload(t *testing.T) {
	d := newTestDumper(t)

	payload := "{\"id\": 3, \"name\": \"carol\", \"balance\": 1}\nnot json\n"
	if _, err := d.Deserialize(snap.Entity{Name: "users"}, []byte(payload)); err == nil {
		t.Fatal("Deserialize() error = nil for malformed payload")
	}

	// The transaction rolled back: the table still has its original rows.
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Errorf("users has %d rows after failed restore, want 2", count)
	}
}
