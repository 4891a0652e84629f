package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/manager"
	"github.com/conn-castle/modsync/internal/manifest"
	"github.com/conn-castle/modsync/internal/messages"
)

// newCheckCmd lints every manifest without contacting the catalog.
func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := flags.loadConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Config
			modsDir, err := cfg.ModsDir()
			if err != nil {
				return err
			}
			scanned, err := manager.Scan(modsDir, cfg.Mods.Manifest, cfg.Mods.ExternalMarker)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warn := color.New(color.FgYellow)
			fail := color.New(color.FgRed)
			repaired := 0
			for _, rec := range scanned.Records {
				if !rec.RepairApplied {
					continue
				}
				repaired++
				rules := repairRules(filepath.Join(modsDir, rec.Key, cfg.Mods.Manifest))
				_, _ = warn.Fprintf(out, messages.CheckRepairedFmt, rec.Key, strings.Join(rules, ", "))
			}
			for _, skipped := range scanned.Skipped {
				_, _ = fail.Fprintf(out, messages.CheckInvalidFmt, skipped.Key, skipped.Err)
			}
			_, _ = fmt.Fprintf(out, messages.CheckSummaryFmt, len(scanned.Records), repaired, len(scanned.Skipped))
			if len(scanned.Skipped) > 0 {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
}

// repairRules reports which repair rules change the manifest at path.
func repairRules(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	_, applied := manifest.Repair(string(raw))
	return applied
}
