package mbtiles

import (
	"database/sql"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/TileVault/core/sqlite"
)

// Writer copies one zoom group from a source archive into a freshly created
// output archive and reports the compacted on-disk byte size. Implementations
// are schema-specific; obtain one via WriterFor once per run and reuse it for
// every group.
type Writer interface {
	Write(srcPath, dstPath string, zooms []int) (int64, error)
}

// WriterFor returns the writer for the given schema.
func WriterFor(schema Schema) (Writer, error) {
	switch schema {
	case SchemaTiles:
		return tilesWriter{}, nil
	case SchemaMapImages:
		return mapImagesWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown schema %q", schema)
	}
}

// openDest creates the destination database, applies bulk-load settings, and
// attaches the source under the name "src" so rows can be copied with
// INSERT..SELECT in a single statement.
//
// Pragmas and the attach are per-connection state, so the pool is pinned to
// a single connection. Durability is traded away on purpose: a failed run is
// re-run from scratch, never resumed.
func openDest(dstPath, srcPath string) (*sql.DB, error) {
	db, err := sqlite.Open(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA journal_mode=OFF`,
		`PRAGMA synchronous=OFF`,
		`PRAGMA temp_store=MEMORY`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(`ATTACH DATABASE ? AS src`, srcPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to attach source: %w", err)
	}
	return db, nil
}

// finishDest detaches the source, compacts the destination, and returns its
// true on-disk size. VACUUM rewrites the file, so the stat afterwards is the
// size the caller will actually ship.
func finishDest(db *sql.DB, dstPath string) (int64, error) {
	if _, err := db.Exec(`DETACH DATABASE src`); err != nil {
		return 0, fmt.Errorf("failed to detach source: %w", err)
	}
	if _, err := db.Exec(`VACUUM`); err != nil {
		return 0, fmt.Errorf("failed to vacuum: %w", err)
	}
	info, err := os.Stat(dstPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat output: %w", err)
	}
	return info.Size(), nil
}

// srcTableExists reports whether the attached source has the named table.
func srcTableExists(db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRow(
		`SELECT 1 FROM src.sqlite_master WHERE type='table' AND name=? LIMIT 1`, name,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// copyMetadata copies every metadata entry verbatim from the attached
// source. Archives without a metadata table are tolerated.
func copyMetadata(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS metadata (name TEXT, value TEXT)`); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	if _, err := db.Exec(`DELETE FROM metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata table: %w", err)
	}

	hasMetadata, err := srcTableExists(db, "metadata")
	if err != nil {
		return fmt.Errorf("failed to inspect source metadata: %w", err)
	}
	if !hasMetadata {
		return nil
	}

	if _, err := db.Exec(`INSERT INTO metadata(name, value) SELECT name, value FROM src.metadata`); err != nil {
		return fmt.Errorf("failed to copy metadata: %w", err)
	}
	return nil
}

// upsertMetadata replaces one metadata entry.
func upsertMetadata(db *sql.DB, name, value string) error {
	if _, err := db.Exec(`DELETE FROM metadata WHERE name=?`, name); err != nil {
		return fmt.Errorf("failed to replace metadata %s: %w", name, err)
	}
	if _, err := db.Exec(`INSERT INTO metadata(name, value) VALUES(?, ?)`, name, value); err != nil {
		return fmt.Errorf("failed to replace metadata %s: %w", name, err)
	}
	return nil
}

// writeZoomMetadata recomputes minzoom/maxzoom for the group being written.
func writeZoomMetadata(db *sql.DB, zooms []int) error {
	if err := upsertMetadata(db, "minzoom", strconv.Itoa(slices.Min(zooms))); err != nil {
		return err
	}
	return upsertMetadata(db, "maxzoom", strconv.Itoa(slices.Max(zooms)))
}

// zoomArgs expands a zoom group into SQL placeholders and bind arguments
// for an IN clause.
func zoomArgs(zooms []int) (string, []any) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(zooms)), ",")
	args := make([]any, len(zooms))
	for i, z := range zooms {
		args[i] = z
	}
	return placeholders, args
}

// tilesWriter writes outputs for the single-table layout.
type tilesWriter struct{}

func (tilesWriter) Write(srcPath, dstPath string, zooms []int) (int64, error) {
	db, err := openDest(dstPath, srcPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := copyMetadata(db); err != nil {
		return 0, err
	}
	if err := createTilesSchema(db); err != nil {
		return 0, err
	}
	if err := writeZoomMetadata(db, zooms); err != nil {
		return 0, err
	}

	placeholders, args := zoomArgs(zooms)
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin tile copy: %w", err)
	}
	_, err = tx.Exec(fmt.Sprintf(`
		INSERT INTO tiles(zoom_level, tile_column, tile_row, tile_data)
		SELECT zoom_level, tile_column, tile_row, tile_data
		FROM src.tiles
		WHERE zoom_level IN (%s)`, placeholders), args...)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to copy tiles: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tile copy: %w", err)
	}

	return finishDest(db, dstPath)
}

func createTilesSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tiles (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_data BLOB
		)`); err != nil {
		return fmt.Errorf("failed to create tiles table: %w", err)
	}
	if _, err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS tile_index ON tiles (zoom_level, tile_column, tile_row)`); err != nil {
		return fmt.Errorf("failed to create tile index: %w", err)
	}
	return nil
}

// mapImagesWriter writes outputs for the map/images layout. Coordinate rows
// are copied first; the second pass copies exactly the images those rows
// reference, so an output never holds an orphaned or missing blob.
type mapImagesWriter struct{}

func (mapImagesWriter) Write(srcPath, dstPath string, zooms []int) (int64, error) {
	db, err := openDest(dstPath, srcPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := copyMetadata(db); err != nil {
		return 0, err
	}
	if err := createMapImagesSchema(db); err != nil {
		return 0, err
	}
	if err := writeZoomMetadata(db, zooms); err != nil {
		return 0, err
	}

	placeholders, args := zoomArgs(zooms)
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin map copy: %w", err)
	}
	_, err = tx.Exec(fmt.Sprintf(`
		INSERT INTO map(zoom_level, tile_column, tile_row, tile_id)
		SELECT zoom_level, tile_column, tile_row, tile_id
		FROM src.map
		WHERE zoom_level IN (%s)`, placeholders), args...)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to copy map rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit map copy: %w", err)
	}

	// Only images referenced by the coordinate rows just copied.
	tx, err = db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin image copy: %w", err)
	}
	_, err = tx.Exec(`
		INSERT OR IGNORE INTO images(tile_id, tile_data)
		SELECT i.tile_id, i.tile_data
		FROM src.images i
		JOIN (SELECT DISTINCT tile_id FROM main.map) m ON i.tile_id = m.tile_id`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to copy images: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit image copy: %w", err)
	}

	return finishDest(db, dstPath)
}

func createMapImagesSchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS map (
			zoom_level INTEGER,
			tile_column INTEGER,
			tile_row INTEGER,
			tile_id TEXT
		)`); err != nil {
		return fmt.Errorf("failed to create map table: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS images (
			tile_id TEXT PRIMARY KEY,
			tile_data BLOB
		)`); err != nil {
		return fmt.Errorf("failed to create images table: %w", err)
	}
	if _, err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS map_index ON map (zoom_level, tile_column, tile_row)`); err != nil {
		return fmt.Errorf("failed to create map index: %w", err)
	}
	return nil
}
