package eslint

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineFailed covers every fatal engine outcome: bad configuration,
	// no files matching the targets, a crash, or a missing executable.
	ErrEngineFailed = errors.New("eslint failed")

	ErrEngineTimeout = errors.New("eslint timed out")

	ErrParseOutput = errors.New("failed to parse eslint output")

	ErrInvalidInput = errors.New("invalid input")
)

// EngineError carries the engine's exit code and its own diagnostic text.
type EngineError struct {
	Command  string
	ExitCode int
	Err      error
	Output   string
}

func (e *EngineError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s (exit %d): %v: %s", e.Command, e.ExitCode, e.Err, e.Output)
	}
	return fmt.Sprintf("%s (exit %d): %v", e.Command, e.ExitCode, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func NewEngineError(command string, exitCode int, err error) *EngineError {
	return &EngineError{
		Command:  command,
		ExitCode: exitCode,
		Err:      err,
	}
}

// WithOutput returns a copy of e carrying the engine's output.
func (e *EngineError) WithOutput(output string) *EngineError {
	return &EngineError{
		Command:  e.Command,
		ExitCode: e.ExitCode,
		Err:      e.Err,
		Output:   output,
	}
}
