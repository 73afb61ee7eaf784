package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands. It exists so tests can
// substitute pdftotext.
type CommandRunner interface {
	// Run executes name with args and returns stdout. A non-zero exit is
	// reported as a *CommandError.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError describes a failed command.
type CommandError struct {
	// ExitCode is the process exit status, or -1 if it never ran.
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("exit %d: %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("exit %d: %s", e.ExitCode, msg)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return nil, &CommandError{ExitCode: code, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
