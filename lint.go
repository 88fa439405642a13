package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lintgate/internal/config"
	"lintgate/internal/eslint"
	"lintgate/internal/eslintrc"
	"lintgate/internal/evaluate"
	"lintgate/internal/history"
	"lintgate/internal/leaderboard"
	"lintgate/internal/project"
	"lintgate/internal/report"
	"lintgate/internal/targets"
	"lintgate/internal/types"
	"lintgate/internal/utils"
)

var ErrInvalidMaxWarnings = errors.New("--max-warnings must not be negative")

// newEngine builds the engine for one run. Tests replace it.
var newEngine = func(cfg *config.Config, workDir string) eslint.Engine {
	return eslint.NewCLIEngine(
		eslint.WithCommand(cfg.Engine...),
		eslint.WithWorkingDir(workDir),
		eslint.WithExtensions(cfg.Extensions...),
		eslint.WithPluginsDir(cfg.PluginsRoot(workDir)),
		eslint.WithTimeout(cfg.Timeout),
	)
}

type lintOptions struct {
	maxWarnings    int
	writeFile      bool
	fix            bool
	ignorePatterns []string
	reportFile     string
	showRules      bool
	showFiles      bool
	topN           int
	logHistory     bool
	logDir         string
}

func newLintCommand(root *rootOptions) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run ESLint over the given paths, or src and test by default",
		Example: `  lintgate lint
  lintgate lint src otherDir --max-warnings 0
  lintgate lint --write-file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, root, args)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.maxWarnings, "max-warnings", 0, "fail when more than this many warnings are found")
	flags.BoolVar(&opts.writeFile, "write-file", false, "write the effective configuration to "+eslintrc.FileName)
	flags.BoolVar(&opts.fix, "fix", false, "let ESLint fix problems in place")
	flags.StringArrayVar(&opts.ignorePatterns, "ignore-pattern", nil, "pattern of files to ignore (repeatable)")
	flags.StringVar(&opts.reportFile, "report-file", "", "also write ESLint's JSON results to this file")
	flags.BoolVar(&opts.showRules, "rules", false, "show the most violated rules after the report")
	flags.BoolVar(&opts.showFiles, "files", false, "show the most problematic files after the report")
	flags.IntVar(&opts.topN, "top", 15, "number of entries in each leaderboard")
	flags.BoolVar(&opts.logHistory, "log-history", false, "save the rule and file leaderboards as CSV snapshots")
	flags.StringVar(&opts.logDir, "log-dir", ".lintgate/history", "directory for --log-history snapshots")
	return cmd
}

// budget returns nil when --max-warnings was not given.
func (o *lintOptions) budget(cmd *cobra.Command) (*int, error) {
	if !cmd.Flags().Changed("max-warnings") {
		return nil, nil
	}
	if o.maxWarnings < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxWarnings, o.maxWarnings)
	}
	budget := o.maxWarnings
	return &budget, nil
}

func (o *lintOptions) run(cmd *cobra.Command, root *rootOptions, args []string) error {
	maxWarnings, err := o.budget(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	resolution := targets.Resolve(args, root.cfg.DefaultTargets)
	for _, line := range targets.Notice(PROJECT_NAME, resolution) {
		fmt.Fprintln(out, color.YellowString(line))
	}

	manifest, err := project.Load(root.workDir)
	if err != nil {
		return err
	}
	slog.Debug("Loaded project manifest",
		slog.String("name", manifest.Name),
		slog.Bool("eslint_overrides", manifest.ESLint != nil),
	)

	materializer := eslintrc.NewMaterializer(
		eslintrc.DefaultBaselines(),
		eslintrc.WithResolver(eslintrc.NodeModulesResolver{Root: root.cfg.PluginsRoot(root.workDir)}),
	)
	effective := materializer.Materialize(manifest)

	if o.writeFile {
		path, err := materializer.Persist(root.workDir, effective)
		if err != nil {
			return err
		}
		slog.Info("Wrote ESLint config", slog.String("path", path))
	}

	inv := types.Invocation{
		Targets:        resolution.Targets,
		Config:         materializer.ForEngine(effective),
		MaxWarnings:    maxWarnings,
		Fix:            o.fix,
		IgnorePatterns: o.ignorePatterns,
	}

	stderr := cmd.ErrOrStderr()
	spinner := utils.StartSpinner(stderr, "Linting", !root.quiet && utils.IsTerminal(stderr))
	rep, err := newEngine(root.cfg, root.workDir).Lint(cmd.Context(), inv)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("linting failed: %w", err)
	}

	if o.reportFile != "" {
		path := o.reportFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(root.workDir, path)
		}
		if err := report.WriteFile(path, rep.Raw); err != nil {
			return err
		}
	}

	fmt.Fprint(out, rep.Text)
	if o.showRules {
		leaderboard.PrintRules(out, leaderboard.Rules(rep.Findings), o.topN)
	}
	if o.showFiles {
		leaderboard.PrintFiles(out, leaderboard.Files(rep.Findings), o.topN)
	}

	if o.logHistory {
		if err := o.writeHistory(root.workDir, rep.Findings); err != nil {
			return err
		}
	}

	outcome := evaluate.Evaluate(rep.Findings, maxWarnings)
	for _, line := range evaluate.Summary(outcome, maxWarnings) {
		fmt.Fprintln(out, color.RedString(line))
	}

	for _, stat := range evaluate.ByRule(rep.Findings) {
		slog.Debug("Rule findings",
			slog.String("rule", stat.Rule),
			slog.Int("errors", stat.Errors),
			slog.Int("warnings", stat.Warnings),
		)
	}

	if outcome.ExitCode != evaluate.ExitOK {
		return ErrLintFailed
	}
	return nil
}

func (o *lintOptions) writeHistory(workDir string, findings []types.Finding) error {
	dir := o.logDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	now := time.Now()

	rulesPath, err := history.WriteRules(dir, now, leaderboard.Rules(findings))
	if err != nil {
		return err
	}
	filesPath, err := history.WriteFiles(dir, now, leaderboard.Files(findings))
	if err != nil {
		return err
	}
	slog.Info("Saved leaderboard history",
		slog.String("rules", rulesPath),
		slog.String("files", filesPath),
	)
	return nil
}
