package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/modsync/internal/messages"
)

// Validate ensures the config is complete and consistent.
// source names the file in error messages.
func (c *Config) Validate(source string) error {
	if strings.TrimSpace(c.Mods.Manifest) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "mods.manifest")
	}
	if strings.ContainsAny(c.Mods.Manifest, `/\`) {
		return fmt.Errorf(messages.ConfigPlainNameFmt, source, "mods.manifest", c.Mods.Manifest)
	}
	if strings.TrimSpace(c.Mods.ExternalMarker) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "mods.external_marker")
	}
	if strings.ContainsAny(c.Mods.ExternalMarker, `/\`) {
		return fmt.Errorf(messages.ConfigPlainNameFmt, source, "mods.external_marker", c.Mods.ExternalMarker)
	}
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "catalog.url")
	}
	if strings.TrimSpace(c.Download.URL) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, source, "download.url")
	}
	positive := []struct {
		key   string
		value int64
	}{
		{"catalog.timeout_seconds", int64(c.Catalog.TimeoutSeconds)},
		{"download.max_bytes", c.Download.MaxBytes},
		{"download.timeout_seconds", int64(c.Download.TimeoutSeconds)},
		{"install.lock_timeout_seconds", int64(c.Install.LockTimeoutSeconds)},
	}
	for _, field := range positive {
		if field.value <= 0 {
			return fmt.Errorf(messages.ConfigPositiveIntFmt, source, field.key, field.value)
		}
	}
	if !validOption("install.strategy", c.Install.Strategy) {
		return fmt.Errorf(messages.ConfigStrategyInvalidFmt, source, c.Install.Strategy)
	}
	return nil
}
