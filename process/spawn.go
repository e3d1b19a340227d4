package process

import (
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Jonathas-Conceicao/pipers/errors"
	"github.com/Jonathas-Conceicao/pipers/logger"
	"github.com/Jonathas-Conceicao/pipers/observability"
)

// Handle represents a spawned child process. It owns the read end of the
// pipe capturing the child's standard output until that end is taken by a
// downstream stage via TakeStdout or drained by Output.
type Handle struct {
	id      uuid.UUID
	cmd     *exec.Cmd
	started time.Time

	mu     sync.Mutex
	stdout io.ReadCloser // nil once taken
}

// Start spawns cmd with its standard output redirected into an OS pipe and
// returns without waiting for the child to finish. Spawn failures are
// returned as SpawnFailure errors; Start never panics.
func Start(ctx context.Context, cmd Command) (*Handle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cmd.Binary == "" {
		return nil, errors.EmptyCommand()
	}

	grace := cmd.GracePeriod
	if grace == 0 {
		grace = DefaultGracePeriod
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	if cmd.Stdin != nil {
		c.Stdin = cmd.Stdin
	}
	if cmd.Stderr != nil {
		c.Stderr = cmd.Stderr
	}

	// Use a process group so Kill can take down the entire tree.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Don't let exec.CommandContext kill with SIGKILL immediately.
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = grace

	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, errors.Internal(err)
	}

	id := uuid.New()
	ctx, span := observability.StartSpan(ctx, observability.SpanSpawn)
	span.SetAttributes(
		attribute.String(observability.AttrBinary, cmd.Binary),
		attribute.Int(observability.AttrArgCount, len(cmd.Args)),
		attribute.String(observability.AttrStageID, id.String()),
	)
	defer span.End()

	if err := c.Start(); err != nil {
		observability.SetSpanError(span, err)
		if m := observability.GlobalMetrics(); m != nil {
			m.RecordSpawnError(ctx, cmd.Binary)
		}
		return nil, errors.SpawnFailure(cmd.Binary, err)
	}

	if m := observability.GlobalMetrics(); m != nil {
		m.RecordSpawn(ctx, cmd.Binary)
	}
	log().Debug("process spawned", logger.Fields(
		logger.FieldBinary, cmd.Binary,
		logger.FieldArgs, len(cmd.Args),
		logger.FieldStageID, id.String(),
		logger.FieldPID, c.Process.Pid,
	))

	return &Handle{
		id:      id,
		cmd:     c,
		started: time.Now(),
		stdout:  stdout,
	}, nil
}

// ID returns the stage identifier assigned at spawn time.
func (h *Handle) ID() uuid.UUID { return h.id }

// PID returns the operating system process ID.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return -1
	}
	return h.cmd.Process.Pid
}

// Stdout returns a read-only alias of the captured standard output, or nil
// when the output was never captured or was already taken. The stream is
// not consumed or closed; repeated calls return the same reader.
func (h *Handle) Stdout() io.Reader {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stdout == nil {
		return nil
	}
	return h.stdout
}

// TakeStdout transfers ownership of the captured standard output to the
// caller. After a successful take the handle no longer exposes the stream:
// further Stdout calls return nil and further takes fail with
// NoOutputStream.
func (h *Handle) TakeStdout() (io.ReadCloser, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stdout == nil {
		return nil, errors.NoOutputStream()
	}
	out := h.stdout
	h.stdout = nil
	return out, nil
}

// Wait blocks until the child exits and releases its resources. Any stream
// still held by the handle is closed by the wait.
func (h *Handle) Wait() error {
	err := h.cmd.Wait()

	duration := time.Since(h.started)
	if m := observability.GlobalMetrics(); m != nil {
		m.RecordStageDuration(context.Background(), h.cmd.Path, duration)
	}
	log().Debug("process exited", logger.Fields(
		logger.FieldStageID, h.id.String(),
		logger.FieldDuration, duration.Milliseconds(),
		logger.FieldStatus, h.ExitCode(),
	))

	return err
}

// Output reads the remaining captured standard output to EOF, then waits
// for the child to exit. The read happens before the wait so the child is
// never blocked writing into a full pipe. Returns whatever was read even
// when the wait reports a non-zero exit.
func (h *Handle) Output() ([]byte, error) {
	rc, takeErr := h.TakeStdout()

	var data []byte
	var readErr error
	if takeErr == nil {
		data, readErr = io.ReadAll(rc)
	}

	if err := h.Wait(); err != nil {
		return data, err
	}
	return data, readErr
}

// ExitCode returns the exit code of the exited process, or -1 if the
// process has not exited or was killed by a signal.
func (h *Handle) ExitCode() int {
	if h.cmd.ProcessState == nil {
		return -1
	}
	return h.cmd.ProcessState.ExitCode()
}

// Signal sends sig to the child process.
func (h *Handle) Signal(sig os.Signal) error {
	if h.cmd.Process == nil {
		return errors.Internal(nil).WithDetail("reason", "process not started")
	}
	return h.cmd.Process.Signal(sig)
}

// Kill sends SIGKILL to the child's entire process group.
func (h *Handle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-h.cmd.Process.Pid, syscall.SIGKILL)
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}

func log() *logger.Logger {
	return logger.WithComponent("process")
}
