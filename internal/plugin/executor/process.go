package executor

import (
	"context"
	"errors"
	"os/exec"
)

// ProcessRunner runs a plugin binary to completion and returns its output.
// Tests substitute it to avoid spawning real plugins.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args ...string) (stdout, stderr []byte, err error)
}

// RealProcessRunner implements ProcessRunner using os/exec.
type RealProcessRunner struct{}

// Run executes a real external process.
func (RealProcessRunner) Run(ctx context.Context, path string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, path, args...) // #nosec G204 - configured plugin path
	stdout, err := cmd.Output()
	if err != nil {
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return stdout, exitErr.Stderr, err
		}
		return stdout, nil, err
	}
	return stdout, nil, nil
}
