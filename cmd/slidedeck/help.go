package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	slidedeck "github.com/ceresimaging/daq-slide-deck"
	"github.com/ceresimaging/daq-slide-deck/internal/config"
	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slidedeck [flags] [config.yaml]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a slide presentation as a single HTML file and/or a bundle with ZIP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintf(w, "  config    YAML config file (default %s; built-in defaults if absent)\n", config.DefaultPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, error (default info)")
	fmt.Fprintln(w, "      --log-encoding <s>    Log format: console, json (default console)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SLIDEDECK_OUTPUT_DIR        Output directory")
	fmt.Fprintln(w, "  SLIDEDECK_IMAGE_FORMAT      Image format: webp, jpeg")
	fmt.Fprintln(w, "  SLIDEDECK_WEBP_QUALITY      Encoder quality (1-100)")
	fmt.Fprintln(w, "  SLIDEDECK_MAX_IMAGE_WIDTH   Maximum image width in pixels")
	fmt.Fprintln(w, "  SLIDEDECK_DATE              Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                              Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outputs (under build.output_dir):")
	fmt.Fprintf(w, "  %-28s single file with inlined images\n", slidedeck.IndexFile)
	fmt.Fprintf(w, "  %-28s bundle directory\n", slidedeck.BundleDirName+"/")
	fmt.Fprintf(w, "  %-28s bundle archive\n", slidedeck.BundleZipName)
	fmt.Fprintf(w, "  %-28s processed asset list\n", slidedeck.ManifestFile)
}

// printReport prints the build summary.
func printReport(w io.Writer, title string, r *slidedeck.Report) {
	fmt.Fprintf(w, "Built %q: %d slide(s) in %v\n", title, r.Slides(), r.Duration.Round(time.Millisecond))
	for _, a := range r.Artifacts {
		fmt.Fprintf(w, "  %-40s %s\n", a.Path, fileutil.HumanSize(a.Size))
	}

	c := r.Bundle
	if c == nil {
		c = r.SingleFile
	}
	var notes []string
	if n := c.Count(slidedeck.StatusSkipped); n > 0 {
		notes = append(notes, fmt.Sprintf("%d missing asset reference(s) left unchanged", n))
	}
	if n := c.Count(slidedeck.StatusDegraded); n > 0 {
		notes = append(notes, fmt.Sprintf("%d image(s) copied without conversion", n))
	}
	if n := c.Count(slidedeck.StatusFailed); n > 0 {
		notes = append(notes, fmt.Sprintf("%d asset(s) failed", n))
	}
	if len(notes) > 0 {
		fmt.Fprintf(w, "  note: %s\n", strings.Join(notes, "; "))
	}
	fmt.Fprintf(w, "Total output size: %s\n", fileutil.HumanSize(r.TotalSize))
}
