package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDriverInfo(t *testing.T) {
	info := GetInfo()

	if info.DriverName == "" {
		t.Error("DriverName should not be empty")
	}
	if info.DriverType == "" {
		t.Error("DriverType should not be empty")
	}
	if info.Package == "" {
		t.Error("Package should not be empty")
	}

	// Verify consistency
	if info.DriverName != DriverName() {
		t.Errorf("DriverName mismatch: info=%s, func=%s", info.DriverName, DriverName())
	}
	if info.DriverType != DriverType() {
		t.Errorf("DriverType mismatch: info=%s, func=%s", info.DriverType, DriverType())
	}
	if info.IsCGO != IsCGO() {
		t.Errorf("IsCGO mismatch: info=%v, func=%v", info.IsCGO, IsCGO())
	}

	t.Logf("SQLite driver: %s (%s) from %s", info.DriverName, info.DriverType, info.Package)
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Create a test table
	_, err = db.Exec(`CREATE TABLE test (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	// Insert data
	_, err = db.Exec(`INSERT INTO test (value) VALUES (?)`, "hello")
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	// Query data
	var value string
	err = db.QueryRow(`SELECT value FROM test WHERE id = 1`).Scan(&value)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if value != "hello" {
		t.Errorf("got %q, want %q", value, "hello")
	}
}

func TestOpenReadOnly(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ro.db")

	// Create and populate a database first
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE test (id INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO test (id) VALUES (1)`); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	db.Close()

	// Reopen read-only
	ro, err := OpenReadOnly(dbPath)
	if err != nil {
		t.Fatalf("failed to open read-only: %v", err)
	}
	defer ro.Close()

	var id int
	if err := ro.QueryRow(`SELECT id FROM test`).Scan(&id); err != nil {
		t.Fatalf("failed to query read-only database: %v", err)
	}
	if id != 1 {
		t.Errorf("got %d, want 1", id)
	}

	// Writes must be rejected
	if _, err := ro.Exec(`INSERT INTO test (id) VALUES (2)`); err == nil {
		t.Error("write to read-only database should fail")
	}
}

func TestTableExists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tables.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE present (id INTEGER)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	tests := []struct {
		table string
		want  bool
	}{
		{"present", true},
		{"absent", false},
		{"sqlite_master", false}, // system table, not listed in sqlite_master
	}
	for _, tt := range tests {
		got, err := TableExists(db, tt.table)
		if err != nil {
			t.Fatalf("TableExists(%q) failed: %v", tt.table, err)
		}
		if got != tt.want {
			t.Errorf("TableExists(%q) = %v, want %v", tt.table, got, tt.want)
		}
	}
}

func TestMustOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "must.db")

	db := MustOpen(dbPath)
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE test (id INTEGER)`); err != nil {
		t.Fatalf("failed to use MustOpen database: %v", err)
	}
}
