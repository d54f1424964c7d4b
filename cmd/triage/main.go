// Signin Triage - Sign-in Anomaly Scoring and Triage
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/signintriage

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/signintriage/internal/detection"
	"github.com/tomtom215/signintriage/internal/export"
	"github.com/tomtom215/signintriage/internal/logging"
	"github.com/tomtom215/signintriage/internal/pipeline"
	"github.com/tomtom215/signintriage/internal/signin"
	"github.com/tomtom215/signintriage/internal/validation"
)

// options are the parsed command line flags.
type options struct {
	Threshold int    `json:"threshold" validate:"threshold"`
	Format    string `json:"format" validate:"exportformat"`
	View      bool   `json:"view"`
	Out       string `json:"out"`
	OutDir    string `json:"out_dir"`
	LogLevel  string `json:"log_level" validate:"oneof=trace debug info warn error"`
	Files     []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	logging.Init(logging.Config{
		Level:     opts.LogLevel,
		Format:    "console",
		Timestamp: true,
		Output:    stderr,
	})

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	layout := export.LayoutFull
	if opts.View {
		layout = export.LayoutView
	}

	if len(opts.Files) == 1 && opts.OutDir == "" {
		if err := triageToPath(ctx, opts.Files[0], opts.Out, opts.Threshold, format, layout, stdout); err != nil {
			fmt.Fprintln(stderr, errorText(err))
			return 1
		}
		return 0
	}
	return triageMany(ctx, opts, format, layout, stderr)
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("triage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: triage [-threshold N] [-format csv|json|cef] [-view] [-out PATH | -out-dir DIR] FILE...")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.IntVar(&opts.Threshold, "threshold", detection.DefaultThreshold, "alert threshold (0-100)")
	fs.StringVar(&opts.Format, "format", string(export.FormatCSV), "output format: csv, json or cef")
	fs.BoolVar(&opts.View, "view", false, "write the analyst view columns only")
	fs.StringVar(&opts.Out, "out", "", "output file for a single input (default stdout)")
	fs.StringVar(&opts.OutDir, "out-dir", "", "output directory, one <base>.alerts.<ext> per input")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.Format = strings.ToLower(opts.Format)
	opts.Files = fs.Args()

	if len(opts.Files) == 0 {
		fs.Usage()
		return nil, errors.New("triage: no input files")
	}
	if opts.Out != "" && opts.OutDir != "" {
		return nil, errors.New("triage: -out and -out-dir are mutually exclusive")
	}
	if len(opts.Files) > 1 && opts.OutDir == "" {
		return nil, errors.New("triage: several inputs need -out-dir")
	}
	if verr := validation.ValidateStruct(opts); verr != nil {
		return nil, fmt.Errorf("triage: %w", verr)
	}
	return opts, nil
}

// triageMany runs one independent batch per file. A failing file does
// not stop the others.
func triageMany(ctx context.Context, opts *options, format export.Format, layout export.Layout, stderr io.Writer) int {
	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		fmt.Fprintf(stderr, "triage: %v\n", err)
		return 1
	}

	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed int
	)
	g.SetLimit(runtime.NumCPU())

	outs := outputPaths(opts.OutDir, opts.Files, format)
	for i, path := range opts.Files {
		out := outs[i]
		g.Go(func() error {
			if err := triageToPath(ctx, path, out, opts.Threshold, format, layout, nil); err != nil {
				mu.Lock()
				failed++
				fmt.Fprintf(stderr, "%s: %s\n", path, errorText(err))
				mu.Unlock()
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.Error().Int("failed", failed).Int("files", len(opts.Files)).Msg("Some batches failed")
		return 1
	}
	return 0
}

// triageToPath scores the file at in and writes the alerts to out, or to
// stdout when out is empty.
func triageToPath(ctx context.Context, in, out string, threshold int, format export.Format, layout export.Layout, stdout io.Writer) error {
	f, err := os.Open(in) //nolint:gosec // path comes from the operator
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := pipeline.Run(ctx, f, threshold)
	if err != nil {
		return err
	}

	exporter, err := export.New(format, layout)
	if err != nil {
		return err
	}

	logging.Info().
		Str("file", in).
		Str("batch_id", res.Stats.BatchID).
		Int("rows", res.Stats.RowsRead).
		Int("dropped", res.Stats.RowsDropped()).
		Int("alerts", len(res.Alerts)).
		Msg("Batch triaged")

	if out == "" {
		return exporter.Export(stdout, res.Document())
	}

	return writeFile(out, exporter, res.Document())
}

// writeFile exports doc to the file at out. A partially written file is
// removed on failure.
func writeFile(out string, exporter export.Exporter, doc *export.Document) error {
	dst, err := os.Create(out) //nolint:gosec // path comes from the operator
	if err != nil {
		return err
	}
	if err := exporter.Export(dst, doc); err != nil {
		_ = dst.Close()
		_ = os.Remove(out)
		return err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(out)
		return err
	}
	return nil
}

// outputPath returns <dir>/<base>.alerts.<ext> for input path.
func outputPath(dir, path string, format export.Format) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s.alerts.%s", base, format))
}

// outputPaths names one output per input. Inputs sharing a base name get
// numbered suffixes in argument order: x.alerts.csv, x-2.alerts.csv.
func outputPaths(dir string, files []string, format export.Format) []string {
	outs := make([]string, len(files))
	taken := make(map[string]bool, len(files))
	for i, path := range files {
		out := outputPath(dir, path, format)
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for n := 2; taken[out]; n++ {
			out = filepath.Join(dir, fmt.Sprintf("%s-%d.alerts.%s", base, n, format))
		}
		taken[out] = true
		outs[i] = out
	}
	return outs
}

// errorText returns the text shown to the operator. Schema errors are
// printed as-is since they already name the missing columns.
func errorText(err error) string {
	var schemaErr *signin.SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Error()
	}
	return "triage: " + err.Error()
}
