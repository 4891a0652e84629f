package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/modsync/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish
// validation problems from other Load failure modes.
var ErrConfigValidation = errors.New("config validation failed")

// LoadOptions controls where configuration comes from.
type LoadOptions struct {
	// Path is the --config flag value.
	Path string
	// ModsDir is the --mods-dir flag value; it wins over the file and the environment.
	ModsDir       string
	Getenv        func(string) string
	UserConfigDir func() (string, error)
}

// Loaded is the effective configuration and where it came from.
type Loaded struct {
	Config *Config
	Path   string
	// FromFile is false when no file existed at the default path and built-in defaults were used.
	FromFile bool
}

// Load resolves the config path, reads and validates the file, then applies
// environment and flag overrides. A missing file at the default path yields the
// defaults; a missing file that was asked for explicitly is an error.
func Load(opts LoadOptions) (*Loaded, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.UserConfigDir == nil {
		opts.UserConfigDir = os.UserConfigDir
	}
	path, explicit, err := ResolvePath(opts.Path, opts.Getenv, opts.UserConfigDir)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigResolvePathFmt, err)
	}

	loaded := &Loaded{Path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, parseErr := ParseConfig(data, path)
		if parseErr != nil {
			return nil, parseErr
		}
		loaded.Config = cfg
		loaded.FromFile = true
	case errors.Is(err, os.ErrNotExist) && !explicit:
		cfg := Default()
		loaded.Config = &cfg
	default:
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}

	if err := loaded.Config.applyOverrides(opts.Getenv(EnvModsDir), opts.ModsDir); err != nil {
		return nil, err
	}
	return loaded, nil
}

// ParseConfig parses and validates config TOML data from a source identifier.
// Keys absent from data keep their default values.
func ParseConfig(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches misspelled keys that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&cfg)
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return errors.New(strictErr.String())
	}
	return err
}

// applyOverrides layers the environment and flag values over mods.dir and expands a leading ~.
func (c *Config) applyOverrides(envModsDir string, flagModsDir string) error {
	if v := strings.TrimSpace(envModsDir); v != "" {
		c.Mods.Dir = v
	}
	if v := strings.TrimSpace(flagModsDir); v != "" {
		c.Mods.Dir = v
	}
	if c.Mods.Dir == "" {
		return nil
	}
	expanded, err := homedir.Expand(c.Mods.Dir)
	if err != nil {
		return fmt.Errorf(messages.ConfigExpandModsDirFmt, c.Mods.Dir, err)
	}
	c.Mods.Dir = expanded
	return nil
}

// ModsDir returns the configured mods directory or a validation error when none is set.
func (c *Config) ModsDir() (string, error) {
	if strings.TrimSpace(c.Mods.Dir) == "" {
		return "", fmt.Errorf("%w: %s", ErrConfigValidation, messages.ConfigModsDirRequired)
	}
	return c.Mods.Dir, nil
}
