// Package sqliteexternal provides optional external SQLite drivers.
//
// This package is part of the main github.com/FocuswithJustin/TileVault module
// and provides CGO-based SQLite drivers for performance-critical applications.
//
// # CGO SQLite Driver
//
// To use the CGO driver (github.com/mattn/go-sqlite3):
//
//	import _ "github.com/FocuswithJustin/TileVault/contrib/sqlite-external"
//
// Build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite
//
// # Default Pure Go Driver
//
// By default, TileVault uses the pure Go modernc.org/sqlite driver, which
// requires no CGO. See github.com/FocuswithJustin/TileVault/core/sqlite.
//
// # When to Use
//
// Use this package when:
//   - Performance is critical (2-5x faster for large databases)
//   - You need specific SQLite extensions
//   - You already have CGO in your build pipeline
//
// Use the default pure Go driver when:
//   - Portability is important
//   - Cross-compilation is required
//   - You want simpler deployment (single binary)
package sqliteexternal
