// Package mbtiles implements zoom-level splitting of MBTiles archives.
//
// An MBTiles file is a SQLite database holding a pyramid of map tiles keyed
// by (zoom_level, tile_column, tile_row). Two on-disk layouts are supported:
//
//   - tiles: a single tiles table carrying the blob inline
//   - map/images: a map coordinate table referencing deduplicated blobs
//     in an images table via tile_id
//
// The splitter estimates per-zoom payload sizes from blob lengths, greedily
// packs zoom levels into groups under a byte budget, and writes each group
// into its own schema-complete MBTiles file, compacting and measuring the
// real on-disk size afterwards.
package mbtiles

import (
	"database/sql"
	"fmt"
)

// Schema identifies the on-disk MBTiles layout of an archive.
type Schema string

const (
	// SchemaTiles is the single-table layout with inline blobs.
	SchemaTiles Schema = "tiles"
	// SchemaMapImages is the two-table layout with deduplicated blobs.
	SchemaMapImages Schema = "map_images"
)

// Extension is the conventional MBTiles file extension.
const Extension = ".mbtiles"

// coordTable returns the table that carries zoom/column/row coordinates
// for the given schema.
func coordTable(schema Schema) (string, error) {
	switch schema {
	case SchemaTiles:
		return "tiles", nil
	case SchemaMapImages:
		return "map", nil
	default:
		return "", fmt.Errorf("unknown schema %q", schema)
	}
}

// ZoomLevels returns the distinct zoom levels present in the archive in
// ascending order. An empty result is legal at this layer; Split maps it
// to ErrEmptyArchive.
func ZoomLevels(db *sql.DB, schema Schema) ([]int, error) {
	table, err := coordTable(schema)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(fmt.Sprintf(
		`SELECT DISTINCT zoom_level FROM %s ORDER BY zoom_level`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate zoom levels: %w", err)
	}
	defer rows.Close()

	var zooms []int
	for rows.Next() {
		var z int
		if err := rows.Scan(&z); err != nil {
			return nil, fmt.Errorf("failed to scan zoom level: %w", err)
		}
		zooms = append(zooms, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to enumerate zoom levels: %w", err)
	}
	return zooms, nil
}
