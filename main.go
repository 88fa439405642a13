package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lintgate/internal/config"
	"lintgate/internal/evaluate"
	"lintgate/internal/logging"
	"lintgate/internal/utils"
)

const VERSION = "1.0.0"
const PROJECT_NAME = "lintgate"

// ErrLintFailed signals a failing lint outcome. The report already explains
// it, so nothing more is printed.
var ErrLintFailed = errors.New("lint failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrLintFailed) {
			fmt.Fprintf(stderr, "%s %v\n", color.RedString("Error:"), err)
		}
		return evaluate.ExitFailure
	}
	return evaluate.ExitOK
}

// skipConfigAnnotation marks commands that must run without loading the
// tool config file, so they work when that file is broken.
const skipConfigAnnotation = "lintgate/skip-config"

// rootOptions is shared by every subcommand. cfg and workDir are filled in
// by the persistent pre-run.
type rootOptions struct {
	configFile string
	verbose    bool
	quiet      bool
	logJSON    bool

	cfg     *config.Config
	workDir string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           PROJECT_NAME,
		Short:         "Lint TypeScript and React sources with a shared ESLint baseline",
		Version:       VERSION,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(stdout, stderr, cmd.Annotations[skipConfigAnnotation] == "true")
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "path to a lintgate config file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write diagnostics as JSON lines")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newLintCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	return cmd
}

func (o *rootOptions) setup(stdout, stderr io.Writer, skipConfig bool) error {
	// Configure logging from flags first so config loading can log.
	logging.Setup(logging.Config{Level: o.flagLevel(logging.LevelWarn), JSON: o.logJSON, Output: stderr})

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	o.workDir = workDir

	switch {
	case skipConfig:
		o.cfg = config.NewConfig()
	case o.configFile != "":
		o.cfg, err = config.LoadConfigFromFile(o.configFile)
	default:
		o.cfg, err = config.LoadConfig(workDir)
	}
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(o.cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Setup(logging.Config{Level: o.flagLevel(level), JSON: o.logJSON, Output: stderr})

	switch o.cfg.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = os.Getenv("NO_COLOR") != "" || !utils.IsTerminal(stdout)
	}

	slog.Debug("Configuration loaded",
		slog.String("path", o.cfg.Path),
		slog.String("work_dir", workDir),
	)
	return nil
}

func (o *rootOptions) flagLevel(fallback logging.Level) logging.Level {
	switch {
	case o.verbose:
		return logging.LevelDebug
	case o.quiet:
		return logging.LevelError
	default:
		return fallback
	}
}
