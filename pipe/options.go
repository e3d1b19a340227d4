package pipe

import (
	"context"
	"io"
	"time"

	"github.com/Jonathas-Conceicao/pipers/process"
)

// settings carries per-stage spawn configuration down a chain. Then inherits
// the settings of the stage it extends; options passed to Then override them
// for that stage and its descendants.
type settings struct {
	ctx    context.Context
	dir    string
	env    []string
	stderr io.Writer
	grace  time.Duration
}

func defaultSettings() settings {
	return settings{ctx: context.Background()}
}

func (s *settings) apply(opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

func (s settings) configure(cmd *process.Command) {
	cmd.Dir = s.dir
	cmd.Env = append([]string(nil), s.env...)
	cmd.Stderr = s.stderr
	cmd.GracePeriod = s.grace
}

// Option configures how pipeline stages are spawned.
type Option func(*settings)

// WithContext sets the context governing every stage spawned through this
// call and its descendants. Canceling it terminates the stages.
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithDir sets the working directory for spawned stages.
func WithDir(dir string) Option {
	return func(s *settings) { s.dir = dir }
}

// WithEnv appends environment variables (key=value) for spawned stages,
// merged with the parent environment.
func WithEnv(kv ...string) Option {
	return func(s *settings) {
		s.env = append(append([]string(nil), s.env...), kv...)
	}
}

// WithStderr directs the standard error of spawned stages to w instead of
// inheriting the parent's.
func WithStderr(w io.Writer) Option {
	return func(s *settings) { s.stderr = w }
}

// WithGracePeriod sets how long a canceled stage gets after SIGTERM before
// SIGKILL.
func WithGracePeriod(d time.Duration) Option {
	return func(s *settings) { s.grace = d }
}
