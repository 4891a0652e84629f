package main

import (
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/catalog"
	"github.com/conn-castle/modsync/internal/config"
	"github.com/conn-castle/modsync/internal/install"
	"github.com/conn-castle/modsync/internal/manager"
	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/terminal"
)

// Seams for tests.
var (
	getenv        = os.Getenv
	userConfigDir = os.UserConfigDir
	isTerminal    = terminal.IsInteractive
)

const (
	flagConfig  = "config"
	flagModsDir = "mods-dir"
	flagQuiet   = "quiet"
	flagNoColor = "no-color"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	modsDir    string
	quiet      bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&flags.configPath, flagConfig, "", messages.RootConfigFlag)
	cmd.PersistentFlags().StringVar(&flags.modsDir, flagModsDir, "", messages.RootModsDirFlag)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, flagQuiet, "q", false, messages.RootQuietFlag)
	cmd.PersistentFlags().BoolVar(&flags.noColor, flagNoColor, false, messages.RootNoColorFlag)

	cmd.AddCommand(
		newListCmd(flags),
		newUpdateCmd(flags),
		newCheckCmd(flags),
		newNotesCmd(flags),
		newConfigCmd(flags),
	)
	return cmd
}

// loadConfig resolves the effective configuration and applies the colour setting.
func (f *rootFlags) loadConfig() (*config.Loaded, error) {
	loaded, err := config.Load(config.LoadOptions{
		Path:          f.configPath,
		ModsDir:       f.modsDir,
		Getenv:        getenv,
		UserConfigDir: userConfigDir,
	})
	if err != nil {
		return nil, err
	}
	if f.noColor || !loaded.Config.ColorEnabled() {
		color.NoColor = true
	}
	return loaded, nil
}

// app is the wiring for one command invocation.
type app struct {
	cfg     *config.Config
	modsDir string
	manager *manager.Manager
	out     io.Writer
	errOut  io.Writer
}

// newApp loads config and builds the catalog client, install pipeline and manager.
func (f *rootFlags) newApp(cmd *cobra.Command) (*app, error) {
	loaded, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config
	modsDir, err := cfg.ModsDir()
	if err != nil {
		return nil, err
	}

	warn := f.warnWriter(cmd)
	progress := cmd.ErrOrStderr()
	if f.quiet {
		progress = io.Discard
	}
	strategy, err := install.ParseStrategy(cfg.Install.Strategy)
	if err != nil {
		return nil, err
	}
	pipeline, err := install.New(install.Options{
		ModsDir:     modsDir,
		URLTemplate: cfg.Download.URL,
		Strategy:    strategy,
		MaxBytes:    cfg.Download.MaxBytes,
		LockTimeout: cfg.LockTimeout(),
		HTTP:        &http.Client{Timeout: cfg.DownloadTimeout()},
		Progress:    progress,
	})
	if err != nil {
		return nil, err
	}
	mgr, err := manager.New(manager.Options{
		ModsDir:        modsDir,
		ManifestName:   cfg.Mods.Manifest,
		ExternalMarker: cfg.Mods.ExternalMarker,
		Catalog:        catalog.NewHTTPClient(cfg.Catalog.URL, cfg.CatalogTimeout()),
		Installer:      pipeline,
		WarnWriter:     warn,
	})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		modsDir: modsDir,
		manager: mgr,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}, nil
}

// warnWriter returns stderr painted yellow, or a discard writer under --quiet.
func (f *rootFlags) warnWriter(cmd *cobra.Command) io.Writer {
	if f.quiet {
		return io.Discard
	}
	return colorWriter{out: cmd.ErrOrStderr(), paint: color.New(color.FgYellow)}
}

// colorWriter paints everything written through it.
type colorWriter struct {
	out   io.Writer
	paint *color.Color
}

func (w colorWriter) Write(p []byte) (int, error) {
	if _, err := w.paint.Fprint(w.out, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
