package mbtiles

import (
	"database/sql"

	apperrors "github.com/FocuswithJustin/TileVault/core/errors"
	"github.com/FocuswithJustin/TileVault/core/sqlite"
)

// DetectSchema classifies an open archive as one of the supported MBTiles
// layouts. The tiles layout wins if both are somehow present. Detection
// only probes sqlite_master and has no side effects.
func DetectSchema(db *sql.DB) (Schema, error) {
	hasTiles, err := sqlite.TableExists(db, "tiles")
	if err != nil {
		return "", apperrors.Wrap(err, "failed to inspect schema")
	}
	if hasTiles {
		return SchemaTiles, nil
	}

	hasMap, err := sqlite.TableExists(db, "map")
	if err != nil {
		return "", apperrors.Wrap(err, "failed to inspect schema")
	}
	hasImages, err := sqlite.TableExists(db, "images")
	if err != nil {
		return "", apperrors.Wrap(err, "failed to inspect schema")
	}
	if hasMap && hasImages {
		return SchemaMapImages, nil
	}

	return "", apperrors.NewSchema("", "expected 'tiles' table or ('map' + 'images')")
}
