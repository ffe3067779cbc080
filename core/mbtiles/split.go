package mbtiles

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	apperrors "github.com/FocuswithJustin/TileVault/core/errors"
	"github.com/FocuswithJustin/TileVault/core/sqlite"
	"github.com/FocuswithJustin/TileVault/internal/logging"
	"github.com/FocuswithJustin/TileVault/internal/validation"
)

const (
	// DefaultLimitMB leaves a little headroom under common hosting limits.
	DefaultLimitMB = 99
	// DefaultOverhead approximates SQLite index/page overhead on top of
	// raw blob payload.
	DefaultOverhead = 1.25
)

// Options configures a split run. Source is required. OutDir defaults to
// the current directory, Prefix to the source filename stem, LimitBytes to
// DefaultLimitMB, Overhead to DefaultOverhead.
type Options struct {
	Source     string
	OutDir     string
	Prefix     string
	LimitBytes int64
	Overhead   float64
}

// GroupResult describes one written output archive.
type GroupResult struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	MinZoom   int    `json:"min_zoom"`
	MaxZoom   int    `json:"max_zoom"`
	OverLimit bool   `json:"over_limit"`
	Checksum  string `json:"blake3"`
}

// Report is the full result of a split run. Warnings carry the advisory
// conditions (a zoom level whose estimate alone exceeds the limit, an
// output whose measured size still exceeds it); they never abort the run.
type Report struct {
	RunID      string        `json:"run_id"`
	Source     string        `json:"source"`
	Schema     Schema        `json:"schema"`
	Zooms      []int         `json:"zooms"`
	LimitBytes int64         `json:"limit_bytes"`
	Groups     []GroupResult `json:"groups"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// Split partitions a source MBTiles archive into multiple output archives,
// each holding a contiguous run of zoom levels and aiming to stay under the
// byte limit. Outputs written before a failure are left on disk.
func Split(opts Options) (*Report, error) {
	if opts.Source == "" {
		return nil, apperrors.NewValidation("source", "source path is required")
	}
	if err := validation.ValidatePath(opts.Source); err != nil {
		return nil, apperrors.NewValidation("source", err.Error())
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.LimitBytes == 0 {
		opts.LimitBytes = DefaultLimitMB << 20
	}
	if opts.LimitBytes < 0 {
		return nil, apperrors.NewValidation("limit", "limit must be positive")
	}
	if opts.Overhead == 0 {
		opts.Overhead = DefaultOverhead
	}
	if opts.Overhead < 1 {
		return nil, apperrors.NewValidation("overhead", "overhead factor must be >= 1")
	}

	if _, err := os.Stat(opts.Source); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSourceNotFound, "stat %s", opts.Source)
	}

	prefix := opts.Prefix
	if prefix == "" {
		base := filepath.Base(opts.Source)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}
	prefix = validation.SanitizePrefix(prefix)
	if err := validation.ValidatePrefix(prefix); err != nil {
		return nil, apperrors.NewValidation("prefix", err.Error())
	}

	// Estimation phase: the source handle lives only until sizes are
	// gathered, then every writer reopens it independently.
	src, err := sqlite.OpenReadOnly(opts.Source)
	if err != nil {
		return nil, apperrors.NewIO("open", opts.Source, err)
	}

	schema, err := DetectSchema(src)
	if err != nil {
		src.Close()
		var schemaErr *apperrors.SchemaError
		if apperrors.As(err, &schemaErr) {
			schemaErr.Path = opts.Source
		}
		return nil, err
	}

	zooms, err := ZoomLevels(src, schema)
	if err != nil {
		src.Close()
		return nil, err
	}
	if len(zooms) == 0 {
		src.Close()
		return nil, apperrors.Wrapf(apperrors.ErrEmptyArchive, "no zoom levels in %s", opts.Source)
	}

	sizes, err := EstimateZoomSizes(src, schema)
	if err != nil {
		src.Close()
		return nil, err
	}
	if err := src.Close(); err != nil {
		return nil, apperrors.NewIO("close", opts.Source, err)
	}

	report := &Report{
		RunID:      uuid.NewString(),
		Source:     opts.Source,
		Schema:     schema,
		Zooms:      zooms,
		LimitBytes: opts.LimitBytes,
	}

	logging.SplitStarted(report.RunID, opts.Source, string(schema), len(zooms), opts.LimitBytes)

	// Advisory only: a single oversized zoom still gets its own output.
	for _, z := range zooms {
		if adj := AdjustedEstimate(sizes[z], opts.Overhead); adj > opts.LimitBytes {
			logging.ZoomOversized(report.RunID, z, adj, opts.LimitBytes)
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"zoom %d estimated payload too large (%d bytes adjusted); this zoom alone may exceed the limit", z, adj))
		}
	}

	groups := GroupZooms(zooms, sizes, opts.LimitBytes, opts.Overhead)

	writer, err := WriterFor(schema)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, apperrors.NewIO("create", opts.OutDir, err)
	}

	for _, group := range groups {
		minZoom, maxZoom := group[0], group[len(group)-1]
		outPath := filepath.Join(opts.OutDir, fmt.Sprintf("%s_z%d-%d%s", prefix, minZoom, maxZoom, Extension))

		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			return report, apperrors.NewWrite(outPath, minZoom, maxZoom, err)
		}

		size, err := writer.Write(opts.Source, outPath, group)
		if err != nil {
			return report, apperrors.NewWrite(outPath, minZoom, maxZoom, err)
		}

		checksum, err := fileChecksum(outPath)
		if err != nil {
			return report, apperrors.NewWrite(outPath, minZoom, maxZoom, err)
		}

		result := GroupResult{
			Path:      outPath,
			SizeBytes: size,
			MinZoom:   minZoom,
			MaxZoom:   maxZoom,
			OverLimit: size > opts.LimitBytes,
			Checksum:  checksum,
		}
		report.Groups = append(report.Groups, result)

		logging.GroupWritten(report.RunID, outPath, minZoom, maxZoom, size, result.OverLimit)
		if result.OverLimit {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"output %s still over limit: %d > %d bytes", outPath, size, opts.LimitBytes))
		}
	}

	return report, nil
}

// fileChecksum returns the hex BLAKE3 digest of a file's contents.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
