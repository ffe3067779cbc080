package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/TileVault/core/sqlite"
)

// createTestArchive builds a minimal tiles-layout MBTiles fixture.
func createTestArchive(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "fixture.mbtiles")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE metadata (name TEXT, value TEXT)`,
		`INSERT INTO metadata(name, value) VALUES('name', 'fixture')`,
		`CREATE TABLE tiles (zoom_level INTEGER, tile_column INTEGER, tile_row INTEGER, tile_data BLOB)`,
		`CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)`,
		`INSERT INTO tiles VALUES(0, 0, 0, x'89504e47')`,
		`INSERT INTO tiles VALUES(1, 0, 0, x'89504e47')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}

func TestSplitCmd_Run(t *testing.T) {
	dir := t.TempDir()
	src := createTestArchive(t, dir)
	outDir := filepath.Join(dir, "out")

	cmd := &SplitCmd{
		Input:    src,
		Outdir:   outDir,
		LimitMB:  99,
		Overhead: 1.25,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("split failed: %v", err)
	}

	wantPath := filepath.Join(outDir, "fixture_z0-1.mbtiles")
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("expected output %s: %v", wantPath, err)
	}
}

func TestSplitCmd_Run_RejectsBadLimit(t *testing.T) {
	cmd := &SplitCmd{Input: "whatever.mbtiles", LimitMB: 0}
	if err := cmd.Run(); err == nil {
		t.Error("zero limit should be rejected")
	}
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	if err := cmd.Run(); err != nil {
		t.Errorf("version failed: %v", err)
	}
}
