package process

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Jonathas-Conceicao/pipers/errors"
)

// Run spawns a subprocess, collects its output, and waits for it to
// complete. If the context is canceled, SIGTERM is sent first, then SIGKILL
// after the grace period.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	var stderr bytes.Buffer
	if cmd.Stderr == nil {
		cmd.Stderr = &stderr
	}

	start := time.Now()
	h, err := Start(ctx, cmd)
	if err != nil {
		return nil, err
	}

	stdout, err := h.Output()
	result := &Result{
		Stdout:   stdout,
		Stderr:   stderr.Bytes(),
		ExitCode: h.ExitCode(),
		Duration: time.Since(start),
	}

	if err != nil {
		// Context cancellation is the expected way to kill a process.
		if ctx != nil && ctx.Err() != nil {
			return result, errors.Timeout(cmd.Binary).WithCause(ctx.Err())
		}
		return result, fmt.Errorf("process: exit code %d: %w", result.ExitCode, err)
	}

	return result, nil
}
