package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-parseval"
	"github.com/jamesainslie/go-parseval/internal/config"
	"github.com/jamesainslie/go-parseval/internal/render"
	"github.com/jamesainslie/go-parseval/internal/telemetry"
)

// app holds state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	workers    int
	pretagged  bool
	output     string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "parseval",
		Short: "Score predicted syntactic parses against gold parses",
		Long: "parseval compares predicted dependency and constituency parses with gold\n" +
			"parses and reports attachment accuracy, Parseval precision/recall/F1 and\n" +
			"crossing brackets.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "run configuration file (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.IntVar(&a.workers, "workers", 0, "per-sentence concurrency (0 = one per CPU)")
	flags.BoolVar(&a.pretagged, "pretagged", false, "gold sentences are tagged words rather than raw text")
	flags.StringVarP(&a.output, "output", "o", "table", "result format: table, json or yaml")

	root.AddCommand(
		newScoreCmd(a),
		newCompareCmd(a),
		newTreeCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the configuration file, applies flag overrides and builds
// the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("pretagged") {
		cfg.Pretagged = a.pretagged
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) evaluatorOptions() []parseval.Option {
	return []parseval.Option{
		parseval.WithLogger(a.logger),
		parseval.WithWorkers(a.cfg.Workers),
		parseval.WithPretagged(a.cfg.Pretagged),
		parseval.WithTreeCleaning(a.cfg.CleanTrees),
	}
}

// print writes v in the selected output format. table renders score
// records; json and yaml dump v as data.
func (a *app) print(w io.Writer, v any) error {
	switch a.output {
	case "table":
		rec, ok := v.(parseval.Record)
		if !ok {
			return fmt.Errorf("table output is not supported for %T", v)
		}
		s, err := render.Record(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
}

// pick returns the flag value when set, otherwise the configured value.
func pick(cmd *cobra.Command, flag, value, configured string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return configured
}
