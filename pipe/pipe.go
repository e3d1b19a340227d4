package pipe

import (
	"io"

	"github.com/Jonathas-Conceicao/pipers/errors"
	"github.com/Jonathas-Conceicao/pipers/logger"
	"github.com/Jonathas-Conceicao/pipers/process"
)

// Pipe chains external commands so the standard output of one process feeds
// the standard input of the next. A Pipe holds either a spawned process
// handle or a deferred error; once it holds an error, every further
// chaining call propagates that same error and never spawns anything, so a
// whole chain can be built fluently and the first failure inspected at
// Finally.
type Pipe struct {
	handle *process.Handle
	err    error
	opts   settings
}

// New spawns the first stage of a pipeline from a whitespace-separated
// command line. The stage's standard output is captured so a later Then can
// forward it; standard input is left unconfigured. An empty command line or
// a rejected spawn yields a failed Pipe rather than an error return — the
// failure surfaces at Finally.
func New(command string, opts ...Option) *Pipe {
	s := defaultSettings()
	s.apply(opts)
	return start(command, nil, s)
}

// Then extends the pipeline by one stage, wiring the previous stage's
// standard output into the new command's standard input. The receiver is
// consumed and must not be reused: its output stream transfers to the new
// stage. A failed receiver short-circuits without parsing or spawning
// anything. An empty command fails the chain but leaves the upstream
// process running; its lifecycle is then the caller's responsibility.
func (p *Pipe) Then(command string, opts ...Option) *Pipe {
	if p.err != nil {
		return p
	}

	s := p.opts
	s.apply(opts)

	stdin, err := p.handle.TakeStdout()
	if err != nil {
		return failed(err)
	}

	next := start(command, stdin, s)
	// The new child inherited its own descriptor at spawn; drop the parent's
	// copy so the upstream writer sees EOF handling through the child alone.
	// On a failed spawn or parse this also releases the orphaned stream.
	stdin.Close()
	return next
}

// Peek returns a read-only alias of the current stage's standard output
// without consuming the builder or the stream. Repeated calls return the
// same underlying stream. Fails with a NoOutputStream error when the
// builder is failed or the output was already taken.
func (p *Pipe) Peek() (io.Reader, error) {
	if p.err != nil {
		return nil, errors.NoOutputStream()
	}
	out := p.handle.Stdout()
	if out == nil {
		return nil, errors.NoOutputStream()
	}
	return out, nil
}

// Finally consumes the builder and returns the terminal process handle, or
// the first error accumulated while building the chain. The handle is what
// the caller waits on, signals, or reads final output from.
func (p *Pipe) Finally() (*process.Handle, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.handle, nil
}

// start parses and spawns one stage. stdin is non-nil only for chained
// stages.
func start(command string, stdin io.ReadCloser, s settings) *Pipe {
	cmd, err := process.Parse(command)
	if err != nil {
		return failed(err)
	}

	s.configure(&cmd)
	if stdin != nil {
		cmd.Stdin = stdin
	}

	h, err := process.Start(s.ctx, cmd)
	if err != nil {
		return failed(err)
	}
	return &Pipe{handle: h, opts: s}
}

func failed(err error) *Pipe {
	logger.WithComponent("pipe").Debug("stage failed", logger.ErrorFields("spawn", err))
	return &Pipe{err: err}
}
