package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/modsync/internal/messages"
)

// ErrConfigExists reports a config file that would be overwritten without force.
var ErrConfigExists = errors.New("config file already exists")

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigEncodeFmt, err)
	}
	return data, nil
}

// WriteFile writes cfg to path by writing a sibling temp file and renaming it.
// An existing file is replaced only when force is set.
func WriteFile(path string, cfg Config, force bool) error {
	if err := cfg.Validate(path); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf(messages.ConfigExistsFmt, ErrConfigExists, path)
		}
	}
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.ConfigCreateDirFmt, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf(messages.ConfigWriteFmt, path, err)
	}
	committed = true
	return nil
}
