package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/section-stats-go/internal/chart"
	"github.com/user/section-stats-go/internal/collector"
	"github.com/user/section-stats-go/internal/config"
	"github.com/user/section-stats-go/internal/loader"
	"github.com/user/section-stats-go/internal/logging"
	"github.com/user/section-stats-go/internal/report"
)

type options struct {
	configPath string
	outputDir  string
	formats    []string
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "section-stats [FILE...]",
		Short: "Aggregates section statistics files and renders charts.",
		Long: `Reads one or more XML section statistics files, sums their counters and
renders the distribution of section counts per revision and the most
frequent section names as charts in the output directory.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, stdout, stderr)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a section-stats.yaml config file")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory the charts are written to (must exist)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, "Output formats: png, html, json, yaml")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return cmd
}

func run(cmd *cobra.Command, paths []string, opts options, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Directory = opts.outputDir
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Formats = opts.formats
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger := logging.New(cfg.Logging, stderr)
	if len(paths) == 0 {
		logger.Warn("no input files given, rendering empty charts")
	}

	reportOpts := report.Options{
		AxisLength:  cfg.Chart.AxisLength,
		TopNames:    cfg.Chart.TopNames,
		Width:       cfg.Chart.Width,
		Height:      cfg.Chart.Height,
		NamesWidth:  cfg.Chart.NamesWidth,
		NamesHeight: cfg.Chart.NamesHeight,
	}
	adapters := make([]report.ReportAdapter, 0, len(cfg.Output.Formats))
	for _, format := range cfg.Output.Formats {
		adapter, err := report.NewAdapter(format, reportOpts)
		if err != nil {
			return err
		}
		adapters = append(adapters, adapter)
	}

	data, err := collector.Aggregate(loader.XMLParser{}, logger, paths)
	if err != nil {
		return err
	}

	if cfg.Summary.Enabled {
		if err := report.WriteSummary(stdout, data, cfg.Summary.Top); err != nil {
			return err
		}
	}

	sink := chart.NewDirSink(cfg.Output.Directory)
	for i, adapter := range adapters {
		format := cfg.Output.Formats[i]
		if err := adapter.PrepareData(data); err != nil {
			return fmt.Errorf("failed to prepare %s report: %w", format, err)
		}
		if err := adapter.Write(sink); err != nil {
			return fmt.Errorf("failed to write %s report to %s: %w", format, cfg.Output.Directory, err)
		}
		logger.Info("report written", "format", format, "directory", cfg.Output.Directory)
	}

	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
