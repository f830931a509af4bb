package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"robotpath/internal/config"
	"robotpath/internal/interpreter"
	"robotpath/internal/metrics"
)

type options struct {
	configFile  string
	gridSize    int64
	strict      bool
	workers     int
	metricsFile string
	verbose     bool
	dumpAST     bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "robotpath [input-file]",
		Short: "Evaluate robot movement programs on a wrapping grid",
		Long: `Reads a case count followed by one movement program per line and prints
"Case #K: X Y" with the final position of the robot for every case.

Programs use N, S, E and W for unit steps, a digit 2-9 to repeat the next
step or group, and parentheses for groups. Input is read from stdin when no
file is given or the file is "-".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	cmd.Flags().Int64Var(&opts.gridSize, "grid-size", 0, "side of the grid (default 1000000000)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject programs with unbalanced parentheses")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 1, "cases evaluated in parallel")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to this file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug output")
	cmd.Flags().BoolVar(&opts.dumpAST, "dump-ast", false, "log the parsed form of every program")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	log := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}

	in, closeInput, err := openInput(cmd, args, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeInput() }()

	cases, err := interpreter.ReadCases(in)
	if err != nil {
		return fmt.Errorf("reading cases: %w", err)
	}
	log.Debug("cases loaded", "count", len(cases), "grid_size", g.Size, "strict", cfg.Strict)

	collector := metrics.New()
	runner := &interpreter.Runner{
		Grid:     g,
		Start:    cfg.StartPosition(),
		Strict:   cfg.Strict,
		Workers:  cfg.Workers,
		DumpAST:  opts.dumpAST,
		Logger:   log,
		Observer: collector,
	}
	results, runErr := runner.Run(cmd.Context(), cases)

	if opts.metricsFile != "" {
		if err := collector.WriteFile(opts.metricsFile); err != nil {
			log.Error("writing metrics failed", "path", opts.metricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}
	return interpreter.WriteResults(cmd.OutOrStdout(), results)
}

// loadConfig applies the config file, then every flag the user set.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return config.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("grid-size") {
		cfg.GridSize = opts.gridSize
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openInput(cmd *cobra.Command, args []string, log *slog.Logger) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			log.Info("reading cases from the terminal, finish with Ctrl+D")
		}
		return in, func() error { return nil }, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file %s: %w", args[0], err)
	}
	return f, f.Close, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}
