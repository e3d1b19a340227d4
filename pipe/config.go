package pipe

import (
	"time"

	"github.com/Jonathas-Conceicao/pipers/config"
	"github.com/Jonathas-Conceicao/pipers/logger"
)

// Config is the loadable configuration for pipeline defaults.
type Config struct {
	Process ProcessConfig `yaml:"process,omitempty" mapstructure:"process"`
	Logging logger.Config `yaml:"logging,omitempty" mapstructure:"logging"`
}

// ProcessConfig holds spawn defaults applied to every stage built through a
// Runner.
type ProcessConfig struct {
	// Dir is the working directory for spawned stages.
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`
	// Env is additional key=value environment entries for spawned stages.
	Env []string `yaml:"env,omitempty" mapstructure:"env"`
	// GracePeriod is how long a canceled stage gets after SIGTERM before
	// SIGKILL.
	GracePeriod time.Duration `yaml:"grace_period,omitempty" mapstructure:"grace_period" validate:"min=0"`
}

// LoadConfig loads pipeline defaults from config files and the environment,
// and validates them.
func LoadConfig(opts ...config.LoaderOption) (Config, error) {
	var cfg Config
	if err := config.Load("pipers", &cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Runner builds pipelines with defaults bound from configuration. Options
// passed to its New calls override the configured defaults per chain.
type Runner struct {
	opts []Option
}

// FromConfig creates a Runner whose stages inherit the configured spawn
// defaults.
func FromConfig(cfg Config) *Runner {
	var opts []Option
	if cfg.Process.Dir != "" {
		opts = append(opts, WithDir(cfg.Process.Dir))
	}
	if len(cfg.Process.Env) > 0 {
		opts = append(opts, WithEnv(cfg.Process.Env...))
	}
	if cfg.Process.GracePeriod > 0 {
		opts = append(opts, WithGracePeriod(cfg.Process.GracePeriod))
	}
	return &Runner{opts: opts}
}

// New starts a pipeline carrying the Runner's configured defaults.
func (r *Runner) New(command string, opts ...Option) *Pipe {
	merged := make([]Option, 0, len(r.opts)+len(opts))
	merged = append(merged, r.opts...)
	merged = append(merged, opts...)
	return New(command, merged...)
}
