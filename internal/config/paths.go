package config

import (
	"path/filepath"
	"strings"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "MODSYNC_CONFIG"
	// EnvModsDir overrides mods.dir.
	EnvModsDir = "MODSYNC_MODS_DIR"
)

// DefaultPath returns <user config dir>/modsync/config.toml.
func DefaultPath(userConfigDir func() (string, error)) (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modsync", "config.toml"), nil
}

// ResolvePath picks the config file: the flag value, then $MODSYNC_CONFIG, then the default.
// explicit reports whether the path was requested rather than defaulted.
func ResolvePath(flagPath string, getenv func(string) string, userConfigDir func() (string, error)) (path string, explicit bool, err error) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, true, nil
	}
	if p := strings.TrimSpace(getenv(EnvConfigPath)); p != "" {
		return p, true, nil
	}
	path, err = DefaultPath(userConfigDir)
	return path, false, err
}
