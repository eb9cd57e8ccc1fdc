package migrate

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Fatalf("close db: %v", closeErr)
		}
	})
	return db
}

func TestRun_AppliesSchema(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Schema migration must have created the readings table.
	if _, err := db.Exec(`INSERT INTO readings (ts) VALUES ('2025-03-10T10:00:00Z')`); err != nil {
		t.Fatalf("insert into readings after migration: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if n == 0 {
		t.Fatal("no rows in schema_migrations after Run")
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	var first int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&first); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}

	if err := Run(db); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	var second int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&second); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if first != second {
		t.Errorf("second Run applied migrations again: %d -> %d", first, second)
	}
}

func Test_parseMigrationFilename(t *testing.T) {
	tests := []struct {
		in          string
		wantVersion string
		wantName    string
		wantOK      bool
	}{
		{in: "0001_schema.sql", wantVersion: "0001", wantName: "schema", wantOK: true},
		{in: "0002_add_index.sql", wantVersion: "0002", wantName: "add_index", wantOK: true},
		{in: "001_short.sql", wantOK: false},
		{in: "0001_schema.txt", wantOK: false},
		{in: "README.md", wantOK: false},
	}
	for _, tt := range tests {
		version, name, ok := parseMigrationFilename(tt.in)
		if ok != tt.wantOK {
			t.Errorf("parseMigrationFilename(%q) ok = %v; want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && (version != tt.wantVersion || name != tt.wantName) {
			t.Errorf("parseMigrationFilename(%q) = %q, %q; want %q, %q", tt.in, version, name, tt.wantVersion, tt.wantName)
		}
	}
}
