package mbtiles

import (
	"database/sql"
	"fmt"
)

// EstimateZoomSizes returns the estimated stored payload bytes per zoom
// level, computed by summing tile blob lengths. This is an estimate of the
// payload only, not of the final file size; index and page overhead is
// accounted for separately by the grouping overhead factor.
//
// For the map/images layout the blob lives in images, so lengths are summed
// through the tile_id join, once per coordinate row. Shared tile_ids are
// deliberately counted once per referencing coordinate, mirroring how the
// payload would appear without deduplication; see the package tests.
func EstimateZoomSizes(db *sql.DB, schema Schema) (map[int]int64, error) {
	var query string
	switch schema {
	case SchemaTiles:
		query = `
		SELECT zoom_level, SUM(LENGTH(tile_data)) AS bytes
		FROM tiles
		GROUP BY zoom_level
		ORDER BY zoom_level`
	case SchemaMapImages:
		// LEFT JOIN keeps zoom levels whose coordinate rows reference no
		// stored image; they report zero instead of vanishing.
		query = `
		SELECT m.zoom_level AS zoom_level, SUM(LENGTH(i.tile_data)) AS bytes
		FROM map m
		LEFT JOIN images i ON m.tile_id = i.tile_id
		GROUP BY m.zoom_level
		ORDER BY m.zoom_level`
	default:
		return nil, fmt.Errorf("unknown schema %q", schema)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate zoom sizes: %w", err)
	}
	defer rows.Close()

	sizes := make(map[int]int64)
	for rows.Next() {
		var zoom int
		var total sql.NullInt64
		if err := rows.Scan(&zoom, &total); err != nil {
			return nil, fmt.Errorf("failed to scan zoom size: %w", err)
		}
		// NULL sum means every blob at this level is NULL; count as zero.
		sizes[zoom] = total.Int64
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to estimate zoom sizes: %w", err)
	}
	return sizes, nil
}
