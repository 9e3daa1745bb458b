package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"squish/internal/batch"
	"squish/internal/codec"
	"squish/internal/config"
	"squish/internal/naming"
	"squish/internal/tui"
	"squish/internal/validate"
)

var (
	resizeDir       string
	resizeRecursive bool
	resizeWidth     int
	resizeHeight    int
	resizeFormat    string
	resizeConfig    string
	resizeVerbose   bool
	resizeWorkers   int
)

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] [path...]",
	Short: "Resize images to a fixed width and height",
	Long: "Resize the given image files, or every supported image in a directory, " +
		"to the target dimensions. Outputs are written next to their sources as " +
		"resized_<name>. Explicit paths and --dir are mutually exclusive.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(resizeConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = resizeVerbose
		}
		if cmd.Flags().Changed("workers") {
			cfg.MaxWorkers = resizeWorkers
		}
		setupLogging(cfg.Verbose)

		if resizeWidth <= 0 || resizeHeight <= 0 {
			return fmt.Errorf("width and height must be positive (got %dx%d)", resizeWidth, resizeHeight)
		}

		// An explicit --format wins; otherwise the configured default
		// extension decides the output format. --format "" keeps each
		// source's own format.
		format := cfg.DefaultExtension
		if cmd.Flags().Changed("format") {
			format = resizeFormat
		}

		policy := naming.FromToggles(cfg.SkipExisting, cfg.OverrideExisting)
		runner := batch.NewRunner(
			validate.New(cfg.SupportedExtensions),
			codec.LanczosProcessor{},
			cfg.MaxWorkers,
		)

		outcomes, err := runner.Run(cmd.Context(), batch.Options{
			Paths:      args,
			Dir:        resizeDir,
			Width:      resizeWidth,
			Height:     resizeHeight,
			Format:     format,
			Recursive:  resizeRecursive,
			Policy:     policy,
			Extensions: cfg.SupportedExtensions,
		})
		if err != nil {
			return err
		}

		if len(outcomes) == 0 {
			fmt.Fprintln(os.Stdout, "No image files to process.")
			return nil
		}

		printReport(outcomes)

		summary := batch.Summarize(outcomes)
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d images failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

func printReport(outcomes []batch.ResizeOutcome) {
	for _, out := range outcomes {
		var line string
		switch {
		case out.Skipped:
			line = fmt.Sprintf("skip  %s (output exists)", filepath.Base(out.Source))
		case out.Succeeded:
			line = fmt.Sprintf("ok    %s -> %s", filepath.Base(out.Source), filepath.Base(out.Destination))
		default:
			line = fmt.Sprintf("fail  %s (%s)", filepath.Base(out.Source), out.Kind)
		}
		fmt.Fprintln(os.Stdout, tui.RenderOutcome(line, out.Succeeded, out.Skipped))
	}

	summary := batch.Summarize(outcomes)
	rows := []tui.SummaryRow{
		{Label: "Total images", Value: fmt.Sprintf("%d", summary.Total)},
		{Label: "Resized", Value: fmt.Sprintf("%d", summary.Resized)},
		{Label: "Skipped (existing)", Value: fmt.Sprintf("%d", summary.Skipped)},
		{Label: "Failed", Value: fmt.Sprintf("%d", summary.Failed)},
	}
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
}

func setupLogging(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func init() {
	resizeCmd.Flags().StringVarP(&resizeDir, "dir", "d", "", "directory containing images to resize")
	resizeCmd.Flags().BoolVarP(&resizeRecursive, "recursive", "r", false, "scan the directory recursively")
	resizeCmd.Flags().IntVarP(&resizeWidth, "width", "W", 200, "target width in pixels")
	resizeCmd.Flags().IntVarP(&resizeHeight, "height", "H", 200, "target height in pixels")
	resizeCmd.Flags().StringVarP(&resizeFormat, "format", "f", "", "output format (e.g. jpg); empty keeps the source format")
	resizeCmd.Flags().StringVar(&resizeConfig, "config", "", "path to YAML config (default squish.yml)")
	resizeCmd.Flags().BoolVarP(&resizeVerbose, "verbose", "v", false, "log discovery and per-file detail")
	resizeCmd.Flags().IntVar(&resizeWorkers, "workers", 0, "max concurrent resize tasks (0 = one per image)")

	rootCmd.AddCommand(resizeCmd)
}
