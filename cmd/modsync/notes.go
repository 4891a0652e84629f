package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/install"
	"github.com/conn-castle/modsync/internal/manager"
	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
)

// newNotesCmd prints the patch-notes URL for a catalog-tracked mod.
func newNotesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.NotesUse,
		Short: messages.NotesShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := flags.loadConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Config
			if strings.TrimSpace(cfg.Download.NotesURL) == "" {
				return errors.New(messages.NotesURLNotConfigured)
			}
			modsDir, err := cfg.ModsDir()
			if err != nil {
				return err
			}
			scanned, err := manager.Scan(modsDir, cfg.Mods.Manifest, cfg.Mods.ExternalMarker)
			if err != nil {
				return err
			}
			key := args[0]
			for _, rec := range scanned.Records {
				if rec.Key != key {
					continue
				}
				if rec.ExternallyManaged {
					return fmt.Errorf(messages.NotesRefusedFmt, modinfo.ErrExternallyManaged, key)
				}
				if rec.Identifier() == "" {
					return fmt.Errorf(messages.NotesRefusedFmt, manager.ErrNotInCatalog, key)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), install.ExpandURL(cfg.Download.NotesURL, rec.Identifier()))
				return err
			}
			return fmt.Errorf(messages.ManagerModNotFoundFmt, manager.ErrModNotFound, key)
		},
	}
}
