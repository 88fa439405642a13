// Package eslint is the boundary to the ESLint executable.
//
// The engine receives the resolved targets and the effective configuration
// and hands back per-file Findings plus the rendered console report. It
// does not interpret severities against a budget; see package evaluate.
//
// Exit code handling follows ESLint's CLI contract:
//
//	| ESLint exit | Meaning                           | Result            |
//	|-------------|-----------------------------------|-------------------|
//	| 0           | no error findings                 | Report            |
//	| 1           | at least one error finding        | Report            |
//	| 2           | config error, no files, crash     | *EngineError      |
//
// Parse failures are not fatal: ESLint reports them as messages with
// "fatal": true and no rule, which become error Findings.
package eslint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"lintgate/internal/eslintrc"
	"lintgate/internal/evaluate"
	"lintgate/internal/report"
	"lintgate/internal/types"
)

// Engine lints an invocation. Implementations must return a non-nil Report
// or an error, never both.
type Engine interface {
	Lint(ctx context.Context, inv types.Invocation) (*Report, error)
}

// Report is what one engine run produced.
type Report struct {
	Findings []types.Finding
	// Text is the human-readable report, printed verbatim.
	Text string
	// Raw is the engine's JSON result array, used for --report-file.
	Raw []byte
}

// CLIEngine runs ESLint as a subprocess with the JSON formatter.
type CLIEngine struct {
	command    []string
	workingDir string
	extensions []string
	pluginsDir string
	timeout    time.Duration
}

type Option func(*CLIEngine)

// WithCommand sets the executable and leading arguments, e.g. ["npx", "eslint"].
func WithCommand(command ...string) Option {
	return func(e *CLIEngine) {
		e.command = command
	}
}

func WithWorkingDir(dir string) Option {
	return func(e *CLIEngine) {
		e.workingDir = dir
	}
}

// WithExtensions sets the extensions checked inside directory targets.
func WithExtensions(exts ...string) Option {
	return func(e *CLIEngine) {
		e.extensions = exts
	}
}

// WithPluginsDir makes ESLint load plugins relative to dir.
func WithPluginsDir(dir string) Option {
	return func(e *CLIEngine) {
		e.pluginsDir = dir
	}
}

func WithTimeout(d time.Duration) Option {
	return func(e *CLIEngine) {
		e.timeout = d
	}
}

func NewCLIEngine(opts ...Option) *CLIEngine {
	e := &CLIEngine{
		command:    []string{"npx", "eslint"},
		extensions: []string{".ts", ".tsx", ".js", ".jsx"},
		timeout:    2 * time.Minute,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lint runs ESLint once over all targets.
//
// Errors:
//
//	ErrInvalidInput  - nil context or no command configured
//	ErrEngineFailed  - ESLint could not run or exited with a fatal status
//	ErrEngineTimeout - the run exceeded the configured timeout
//	ErrParseOutput   - ESLint's output was not a JSON result array
func (e *CLIEngine) Lint(ctx context.Context, inv types.Invocation) (*Report, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}
	if len(e.command) == 0 {
		return nil, fmt.Errorf("%w: no eslint command configured", ErrInvalidInput)
	}

	ctx, span := startLintSpan(ctx, len(inv.Targets), inv.Fix)
	defer span.End()
	start := time.Now()

	configPath, err := eslintrc.WriteTemp(e.workingDir, inv.Config)
	if err != nil {
		return nil, err
	}
	defer os.Remove(configPath)

	stdout, err := e.execute(ctx, e.args(inv, configPath))
	if err != nil {
		recordLintMetrics(ctx, time.Since(start), 0, 0, false)
		return nil, err
	}

	results, err := ParseResults(stdout)
	if err != nil {
		recordLintMetrics(ctx, time.Since(start), 0, 0, false)
		return nil, NewEngineError(e.commandLine(), 0, ErrParseOutput).WithOutput(err.Error())
	}

	findings := Findings(results)
	rep := &Report{
		Findings: findings,
		Text:     report.Stylish(results),
		Raw:      stdout,
	}

	tally := evaluate.Evaluate(findings, nil)
	setLintSpanResult(span, len(results), tally.ErrorCount, tally.WarningCount)
	recordLintMetrics(ctx, time.Since(start), tally.ErrorCount, tally.WarningCount, true)

	slog.Debug("ESLint completed",
		slog.Int("files", len(results)),
		slog.Int("errors", tally.ErrorCount),
		slog.Int("warnings", tally.WarningCount),
		slog.Duration("duration", time.Since(start)),
	)
	return rep, nil
}

func (e *CLIEngine) args(inv types.Invocation, configPath string) []string {
	args := append([]string{}, e.command[1:]...)
	args = append(args, "--format", "json", "--config", configPath)
	if len(e.extensions) > 0 {
		args = append(args, "--ext", strings.Join(e.extensions, ","))
	}
	if e.pluginsDir != "" {
		args = append(args, "--resolve-plugins-relative-to", e.pluginsDir)
	}
	if inv.Fix {
		args = append(args, "--fix")
	}
	for _, pattern := range inv.IgnorePatterns {
		args = append(args, "--ignore-pattern", pattern)
	}
	return append(args, inv.TargetStrings()...)
}

// execute runs ESLint and returns stdout for exit codes 0 and 1.
func (e *CLIEngine) execute(ctx context.Context, args []string) ([]byte, error) {
	timeout := e.timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.command[0], args...)
	cmd.Dir = e.workingDir
	cmd.Env = append(os.Environ(), "ESLINT_USE_FLAT_CONFIG=false")
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Running ESLint", slog.String("command", e.command[0]), slog.Any("args", args))
	err := cmd.Run()

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return nil, NewEngineError(e.commandLine(), -1, ErrEngineTimeout).WithOutput(stderr.String())
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, NewEngineError(e.commandLine(), -1, fmt.Errorf("%w: %v", ErrEngineFailed, err))
	}

	// Exit 1 only means error findings were reported.
	if exitErr.ExitCode() == 1 && len(bytes.TrimSpace(stdout.Bytes())) > 0 {
		return stdout.Bytes(), nil
	}

	output := strings.TrimSpace(stderr.String())
	if output == "" {
		output = strings.TrimSpace(stdout.String())
	}
	return nil, NewEngineError(e.commandLine(), exitErr.ExitCode(), ErrEngineFailed).WithOutput(output)
}

func (e *CLIEngine) commandLine() string {
	return strings.Join(e.command, " ")
}

// ParseResults decodes `eslint --format json` output. Empty output is no results.
func ParseResults(data []byte) ([]types.ESLintResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var results []types.ESLintResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse ESLint output: %v", err)
	}
	return results, nil
}

// Findings flattens results into Findings, preserving ESLint's file and message order.
func Findings(results []types.ESLintResult) []types.Finding {
	var findings []types.Finding
	for _, result := range results {
		for _, message := range result.Messages {
			findings = append(findings, types.FindingFromMessage(result.FilePath, message))
		}
	}
	return findings
}
