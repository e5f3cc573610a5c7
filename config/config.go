// Package config builds dispatchers from environment variables or YAML files.
//
// Example file:
//
//	context: default
//	level: info
//	format: text
//	contexts:
//	  - name: worker1
//	    level: error
//	    format: json
//	    output: stderr
package config

import (
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/urso/logdispatch"
	"github.com/urso/logdispatch/backend"
	"github.com/urso/logdispatch/backend/cborlog"
	"github.com/urso/logdispatch/backend/enclog"
	"github.com/urso/logdispatch/backend/hclogger"
	"github.com/urso/logdispatch/backend/jsonlog"
	"github.com/urso/logdispatch/backend/txtlog"
)

// EnvPrefix is prepended to all environment variable names read by FromEnv.
const EnvPrefix = "LOGDISPATCH_"

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatCBOR  = "cbor"
	FormatHCLog = "hclog"

	// OutputConsole writes trace, debug and info to stdout, all other levels
	// to stderr.
	OutputConsole = "console"
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputDiscard = "discard"
)

// Config selects the active context and the backends to register.
type Config struct {
	// Context is the active context. A backend is registered for it using
	// Format and Output.
	Context string `yaml:"context"`

	// Level of the active context. Empty keeps the default (all).
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`

	// Contexts lists additional contexts. Empty Format or Output fields
	// inherit the top level settings.
	Contexts []ContextConfig `yaml:"contexts"`
}

// envConfig holds the settings that can be read from the environment.
type envConfig struct {
	Context string `env:"CONTEXT" envDefault:"default"`
	Level   string `env:"LEVEL"`
	Format  string `env:"FORMAT" envDefault:"text"`
	Output  string `env:"OUTPUT" envDefault:"console"`
}

type ContextConfig struct {
	Name   string `yaml:"name"`
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the configuration matching logdispatch.NewDefault.
func Default() *Config {
	return &Config{
		Context: logdispatch.DefaultContext,
		Format:  FormatText,
		Output:  OutputConsole,
	}
}

// FromEnv reads the configuration from LOGDISPATCH_ prefixed environment
// variables.
func FromEnv() (*Config, error) {
	vars, err := env.ParseAsWithOptions[envConfig](env.Options{Prefix: EnvPrefix})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read configuration from environment")
	}

	return &Config{
		Context: vars.Context,
		Level:   vars.Level,
		Format:  vars.Format,
		Output:  vars.Output,
	}, nil
}

// Load reads a YAML configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file %v", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %v", path)
	}
	return cfg, nil
}

func Decode(in io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	return cfg, nil
}

// Build creates a dispatcher with backends for the active context and every
// entry in Contexts.
func Build(cfg *Config, opts ...logdispatch.Option) (*logdispatch.Logger, error) {
	if cfg.Context == "" {
		return nil, errors.New("no active context configured")
	}

	contexts := append([]ContextConfig{{
		Name:   cfg.Context,
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: cfg.Output,
	}}, cfg.Contexts...)

	log := logdispatch.New(opts...)
	for _, c := range contexts {
		if c.Name == "" {
			return nil, errors.New("context without name")
		}
		if c.Format == "" {
			c.Format = cfg.Format
		}
		if c.Output == "" {
			c.Output = cfg.Output
		}

		b, err := newBackend(c.Format, c.Output)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid configuration for context %v", c.Name)
		}
		if err := log.SetLogger(c.Name, b); err != nil {
			return nil, err
		}

		if c.Level == "" {
			continue
		}
		lvl, ok := backend.ParseLevel(c.Level)
		if !ok {
			return nil, errors.Errorf("unknown level %v for context %v", c.Level, c.Name)
		}
		if err := log.SetContext(c.Name); err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}

	if err := log.SetContext(cfg.Context); err != nil {
		return nil, err
	}
	return log, nil
}

func newBackend(format, output string) (backend.Backend, error) {
	out, errOut, err := openOutput(output)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatText:
		return txtlog.New(txtlog.Writer(out, errOut)), nil
	case FormatJSON:
		return jsonlog.New(enclog.Writer(out, "\n"), nil)
	case FormatCBOR:
		return cborlog.New(enclog.Writer(out, ""), nil)
	case FormatHCLog:
		return hclogger.New(hclog.New(&hclog.LoggerOptions{
			Level:  hclog.Trace,
			Output: out,
		})), nil
	default:
		return nil, errors.Errorf("unknown format %v", format)
	}
}

func openOutput(name string) (out, errOut io.Writer, err error) {
	switch name {
	case OutputConsole:
		return os.Stdout, os.Stderr, nil
	case OutputStdout:
		return os.Stdout, os.Stdout, nil
	case OutputStderr:
		return os.Stderr, os.Stderr, nil
	case OutputDiscard:
		return io.Discard, io.Discard, nil
	default:
		return nil, nil, errors.Errorf("unknown output %v", name)
	}
}
