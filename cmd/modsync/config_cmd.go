package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/config"
	"github.com/conn-castle/modsync/internal/messages"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigInitCmd(flags), newConfigShowCmd(flags), newConfigKeysCmd())
	return cmd
}

func newConfigInitCmd(flags *rootFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   messages.ConfigInitUse,
		Short: messages.ConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := config.ResolvePath(flags.configPath, getenv, userConfigDir)
			if err != nil {
				return fmt.Errorf(messages.ConfigResolvePathFmt, err)
			}
			cfg := config.Default()
			cfg.Mods.Dir = initModsDir(path, flags.modsDir, force)
			if err := config.WriteFile(path, cfg, force); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), messages.ConfigWrittenFmt, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.ConfigInitFlagForce)
	return cmd
}

// initModsDir picks mods.dir for a new config: the flag, then the environment,
// then on --force the value already in the file being replaced.
func initModsDir(path string, flagValue string, force bool) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(getenv(config.EnvModsDir)); v != "" {
		return v
	}
	if !force {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	existing, err := config.ParseConfig(data, path)
	if err != nil {
		return ""
	}
	return existing.Mods.Dir
}

func newConfigShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigShowUse,
		Short: messages.ConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := flags.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Encode(*loaded.Config)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if loaded.FromFile {
				_, _ = fmt.Fprintf(out, messages.ConfigShowSourceFmt, loaded.Path)
			} else {
				_, _ = fmt.Fprintf(out, messages.ConfigShowDefaultsFmt, loaded.Path)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

// newConfigKeysCmd lists every config key with its type and description.
func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigKeysUse,
		Short: messages.ConfigKeysShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, messages.ConfigKeysHeader)
			for _, field := range config.Fields() {
				kind := string(field.Type)
				if len(field.Options) > 0 {
					values := make([]string, len(field.Options))
					for i, opt := range field.Options {
						values[i] = opt.Value
					}
					kind = strings.Join(values, "|")
				}
				required := ""
				if field.Required {
					required = messages.ConfigKeysRequired
				}
				_, _ = fmt.Fprintf(tw, messages.ConfigKeysRowFmt, field.Key, kind, required, field.Description)
			}
			return tw.Flush()
		},
	}
}
