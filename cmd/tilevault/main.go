// Command tilevault splits an MBTiles archive into multiple smaller
// archives grouped by zoom level, each aiming to stay under a byte limit.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/TileVault/core/mbtiles"
	"github.com/FocuswithJustin/TileVault/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for tilevault.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	Split   SplitCmd   `cmd:"" help:"Split an MBTiles archive by zoom level"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// SplitCmd splits a source archive into size-bounded outputs.
type SplitCmd struct {
	Input    string  `arg:"" help:"Path to input .mbtiles" type:"existingfile"`
	Outdir   string  `short:"o" default:"." help:"Output directory" type:"path"`
	Prefix   string  `help:"Output filename prefix (default: input filename without extension)"`
	LimitMB  float64 `name:"limit-mb" default:"99" help:"Max output file size in MB"`
	Overhead float64 `default:"1.25" help:"Overhead factor for grouping estimate"`
}

func (c *SplitCmd) Run() error {
	if c.LimitMB <= 0 {
		return fmt.Errorf("--limit-mb must be positive")
	}

	report, err := mbtiles.Split(mbtiles.Options{
		Source:     c.Input,
		OutDir:     c.Outdir,
		Prefix:     c.Prefix,
		LimitBytes: int64(c.LimitMB * 1024 * 1024),
		Overhead:   c.Overhead,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Input: %s\n", report.Source)
	fmt.Printf("Schema: %s\n", report.Schema)
	fmt.Printf("Zooms: %d..%d (%d levels)\n",
		report.Zooms[0], report.Zooms[len(report.Zooms)-1], len(report.Zooms))
	fmt.Printf("Limit: %s\n", humanize.Bytes(uint64(report.LimitBytes)))
	fmt.Printf("Outputs: %d file(s)\n\n", len(report.Groups))

	overrun := false
	for _, g := range report.Groups {
		status := "OK"
		if g.OverLimit {
			status = "OVER"
			overrun = true
		}
		fmt.Printf("  %-4s  %10s   z%d-%d   %s\n",
			status, humanize.Bytes(uint64(g.SizeBytes)), g.MinZoom, g.MaxZoom, g.Path)
	}

	for _, w := range report.Warnings {
		fmt.Printf("\nWarning: %s\n", w)
	}
	if overrun {
		fmt.Println("\nTip: if any output is still OVER, reduce --limit-mb or split by region.")
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("tilevault %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tilevault"),
		kong.Description("TileVault - MBTiles zoom-level splitter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
