// Package xrandr wraps the xrandr binary: invoking it, and parsing its
// query report into display records.
package xrandr

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotAvailable is returned when the xrandr binary cannot be found.
var ErrNotAvailable = errors.New("xrandr is not available in PATH")

// Result captures the outcome of a single xrandr invocation. A failure to
// launch the binary at all is reported the same way as a non-zero exit:
// ExitSuccess false with the error text in Stderr.
type Result struct {
	ExitSuccess bool
	Stdout      string
	Stderr      string
}

// Runner abstracts the xrandr binary so the shift engine can be exercised
// without touching a real display server.
type Runner interface {
	// Query returns xrandr's full textual state report.
	Query() (string, error)
	// Execute runs xrandr with the given arguments.
	Execute(args ...string) Result
}

// CommandRunner invokes a real xrandr binary.
type CommandRunner struct {
	binary string
}

// NewCommandRunner returns a runner for the given binary path. An empty
// path means "xrandr" resolved through PATH.
func NewCommandRunner(binary string) *CommandRunner {
	if binary == "" {
		binary = "xrandr"
	}
	return &CommandRunner{binary: binary}
}

// Available reports whether the configured binary can be resolved.
func (r *CommandRunner) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Query runs xrandr with no arguments and returns its stdout.
func (r *CommandRunner) Query() (string, error) {
	if !r.Available() {
		return "", ErrNotAvailable
	}

	cmd := exec.Command(r.binary)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrText := strings.TrimSpace(stderr.String())
		if stderrText != "" {
			return "", fmt.Errorf("xrandr query failed: %w (%s)", err, stderrText)
		}
		return "", fmt.Errorf("xrandr query failed: %w", err)
	}

	return stdout.String(), nil
}

// Execute runs xrandr with the given arguments and reports the outcome.
// It never returns an error: shift invocations are judged by Result alone.
func (r *CommandRunner) Execute(args ...string) Result {
	cmd := exec.Command(r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	stderrText := strings.TrimSpace(stderr.String())
	if err != nil && stderrText == "" {
		stderrText = err.Error()
	}

	return Result{
		ExitSuccess: err == nil,
		Stdout:      stdout.String(),
		Stderr:      stderrText,
	}
}
