// Package config loads the modsync TOML configuration.
package config

import "time"

// Config is the full modsync configuration.
type Config struct {
	Mods     ModsConfig     `toml:"mods"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Download DownloadConfig `toml:"download"`
	Install  InstallConfig  `toml:"install"`
	Output   OutputConfig   `toml:"output"`
}

// ModsConfig locates the mods and describes how they are recognised.
type ModsConfig struct {
	Dir            string `toml:"dir"`
	Manifest       string `toml:"manifest"`
	ExternalMarker string `toml:"external_marker"`
}

// CatalogConfig configures the update catalog endpoint.
type CatalogConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DownloadConfig configures archive and patch-notes URLs. Both URLs are
// templates in which {identifier} is replaced.
type DownloadConfig struct {
	URL            string `toml:"url"`
	NotesURL       string `toml:"notes_url"`
	MaxBytes       int64  `toml:"max_bytes"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// InstallConfig selects the replacement strategy.
type InstallConfig struct {
	Strategy           string `toml:"strategy"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color *bool `toml:"color"`
}

const (
	DefaultCatalogURL   = "http://api.paydaymods.com/updates/retrieve/"
	DefaultDownloadURL  = "http://download.paydaymods.com/download/latest/{identifier}"
	DefaultNotesURL     = "http://download.paydaymods.com/download/patchnotes/{identifier}"
	DefaultManifest     = "mod.txt"
	DefaultMarker       = ".git"
	DefaultStrategy     = "staged"
	defaultMaxBytes     = int64(512 * 1024 * 1024)
	defaultCatalogSecs  = 30
	defaultDownloadSecs = 300
	defaultLockSecs     = 30
)

// Default returns the built-in configuration. Mods.Dir is empty and must be supplied.
func Default() Config {
	enabled := true
	return Config{
		Mods: ModsConfig{Manifest: DefaultManifest, ExternalMarker: DefaultMarker},
		Catalog: CatalogConfig{
			URL:            DefaultCatalogURL,
			TimeoutSeconds: defaultCatalogSecs,
		},
		Download: DownloadConfig{
			URL:            DefaultDownloadURL,
			NotesURL:       DefaultNotesURL,
			MaxBytes:       defaultMaxBytes,
			TimeoutSeconds: defaultDownloadSecs,
		},
		Install: InstallConfig{Strategy: DefaultStrategy, LockTimeoutSeconds: defaultLockSecs},
		Output:  OutputConfig{Color: &enabled},
	}
}

// ColorEnabled reports whether coloured output is configured.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// CatalogTimeout returns the catalog request timeout.
func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}

// DownloadTimeout returns the archive download timeout.
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.TimeoutSeconds) * time.Second
}

// LockTimeout returns how long an install waits for the per-mod lock.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Install.LockTimeoutSeconds) * time.Second
}
