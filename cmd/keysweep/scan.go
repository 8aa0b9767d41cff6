package keysweep

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/keysweep/keysweep/internal/config"
	"github.com/keysweep/keysweep/internal/engine"
	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/patterns"
	"github.com/keysweep/keysweep/internal/report"
	"github.com/keysweep/keysweep/pkg/core"
)

var (
	flagPath             string
	flagInclude          string
	flagExclude          string
	flagMaxBytes         int64
	flagEntropyThreshold float64
	flagJSON             bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1 MiB)")
	cmd.Flags().Float64Var(&flagEntropyThreshold, "entropy-threshold", 0, "minimum randomness score for generic matches (default 3.5)")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit findings as JSON")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return err
	}

	// Config precedence: CLI > local > global.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}
	merged := config.Merge(gcfg, lcfg)

	sink := core.NewLogSink(abs)
	reg, regErr := patterns.Load(merged.CustomPatterns)
	if regErr != nil {
		fmt.Fprintln(os.Stderr, "warning:", regErr)
		sink.Warn("custom pattern rejected: " + regErr.Error())
	}

	cfg := engine.Config{
		Root:             abs,
		IncludeGlobs:     pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:     pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:         pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:          pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		EntropyThreshold: pickFloat(flagEntropyThreshold, lcfg.EntropyThreshold, gcfg.EntropyThreshold),
		NoCache:          flagNoCache,
		DefaultExcludes:  flagDefaultExcludes,
		Registry:         reg,
		Log:              sink,
	}

	showProgress := term.IsTerminal(int(os.Stderr.Fd()))
	if showProgress {
		cfg.Progress = func(done, total int, path string) {
			fmt.Fprintf(os.Stderr, "\r\x1b[2Kscanning %d/%d %s", done, total, path)
		}
	}

	// Ctrl-C requests cooperative cancellation; partial results still print.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := engine.Run(ctx, cfg)
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	if res.Cancelled {
		fmt.Fprintf(os.Stderr, "scan cancelled: partial results from %d files\n", res.FilesScanned)
	}

	if werr := report.Write(abs, res.Findings, res.FilesScanned); werr != nil {
		sink.Error(fmt.Sprintf("report generation failed: %v", werr))
		fmt.Fprintln(os.Stderr, "warning: report generation failed:", werr)
	}
	if merged.GitIgnoreEnabled() {
		if gerr := files.AppendIgnore(abs, files.WorkDir+"/"); gerr != nil {
			sink.Warn(fmt.Sprintf("could not update .gitignore: %v", gerr))
		}
	}

	if flagJSON {
		if err := core.MarshalFindings(os.Stdout, res.Findings); err != nil {
			return err
		}
	} else {
		noColor := flagNoColor || !term.IsTerminal(int(os.Stdout.Fd()))
		report.Print(os.Stdout, res.Findings, report.PrintOptions{
			NoColor:      noColor,
			Duration:     res.Duration,
			FilesScanned: res.FilesScanned,
		})
	}

	if len(res.Findings) > 0 {
		os.Exit(1)
	}
	return nil
}
