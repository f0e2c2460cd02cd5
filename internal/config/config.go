// Package config loads wsltop settings from an optional TOML file and
// WSLTOP_* environment variables, in that order of precedence (env wins).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/prabalesh/wsltop/internal/models"
	"github.com/prabalesh/wsltop/internal/shell"
)

const EnvPrefix = "WSLTOP_"

type Config struct {
	// Launcher is the argv the command string is appended to.
	Launcher []string
	// Timeout bounds each shell run; zero disables it.
	Timeout         time.Duration
	RefreshInterval time.Duration
	// AllowShell enables the raw command passthrough.
	AllowShell bool
	Debug      bool
	System     models.SystemInfo
	PromptUser string
	PromptHost string
}

func Default() Config {
	return Config{
		Launcher:        append([]string(nil), shell.DefaultLauncher...),
		RefreshInterval: 5 * time.Second,
		AllowShell:      true,
		System:          models.DefaultSystemInfo(),
		PromptUser:      "jean",
		PromptHost:      "pitter-os",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/wsltop/config.toml, falling back to the
// user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wsltop", "config.toml")
}

type fileConfig struct {
	Launcher        []string `toml:"launcher"`
	Timeout         string   `toml:"timeout"`
	RefreshInterval string   `toml:"refresh_interval"`
	AllowShell      *bool    `toml:"allow_shell"`
	Debug           *bool    `toml:"debug"`
	PromptUser      string   `toml:"prompt_user"`
	PromptHost      string   `toml:"prompt_host"`
	System          struct {
		OSName     string `toml:"os_name"`
		Version    string `toml:"version"`
		KernelType string `toml:"kernel_type"`
	} `toml:"system"`
}

// Load reads path over the defaults and then applies the environment.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.applyTOML(path, data); err != nil {
				return Config{}, err
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyTOML(path string, data []byte) error {
	var fc fileConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}

	if fc.Launcher != nil {
		c.Launcher = fc.Launcher
	}
	if fc.Timeout != "" {
		d, err := parseDuration("timeout", fc.Timeout)
		if err != nil {
			return err
		}
		c.Timeout = d
	}
	if fc.RefreshInterval != "" {
		d, err := parseDuration("refresh_interval", fc.RefreshInterval)
		if err != nil {
			return err
		}
		c.RefreshInterval = d
	}
	if fc.AllowShell != nil {
		c.AllowShell = *fc.AllowShell
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.PromptUser != "" {
		c.PromptUser = fc.PromptUser
	}
	if fc.PromptHost != "" {
		c.PromptHost = fc.PromptHost
	}
	if fc.System.OSName != "" {
		c.System.OSName = fc.System.OSName
	}
	if fc.System.Version != "" {
		c.System.Version = fc.System.Version
	}
	if fc.System.KernelType != "" {
		c.System.KernelType = fc.System.KernelType
	}

	return c.validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LAUNCHER"); ok {
		c.Launcher = strings.Fields(v)
	}
	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := parseDuration(EnvPrefix+"TIMEOUT", v)
		if err != nil {
			return err
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "REFRESH_INTERVAL"); ok {
		d, err := parseDuration(EnvPrefix+"REFRESH_INTERVAL", v)
		if err != nil {
			return err
		}
		c.RefreshInterval = d
	}
	if v, ok := lookup(EnvPrefix + "ALLOW_SHELL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sALLOW_SHELL=%q", ErrInvalidValue, EnvPrefix, v)
		}
		c.AllowShell = b
	}
	if v, ok := lookup(EnvPrefix + "DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sDEBUG=%q", ErrInvalidValue, EnvPrefix, v)
		}
		c.Debug = b
	}
	return c.validate()
}

func (c *Config) validate() error {
	if len(c.Launcher) == 0 {
		return fmt.Errorf("%w: launcher must not be empty", ErrInvalidValue)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidValue)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be positive", ErrInvalidValue)
	}
	return nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidValue, key, value, err)
	}
	return d, nil
}
