package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/report"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			snap, err := a.manager.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(a.out, snap)
			}
			if err := report.WriteTable(a.out, snap); err != nil {
				return err
			}
			report.WriteSummary(a.out, snap)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.ListFlagJSON)
	return cmd
}
