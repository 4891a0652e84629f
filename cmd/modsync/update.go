package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
	"github.com/conn-castle/modsync/internal/report"
)

var selectModsFunc = selectMods

type updateOptions struct {
	all      bool
	yes      bool
	showDiff bool
	diffMax  int
}

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	opts := &updateOptions{}
	cmd := &cobra.Command{
		Use:   messages.UpdateUse,
		Short: messages.UpdateShort,
		Long:  messages.UpdateLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all && len(args) > 0 {
				return errors.New(messages.UpdateAllWithArgs)
			}
			a, err := flags.newApp(cmd)
			if err != nil {
				return err
			}
			return runUpdate(cmd, a, opts, args)
		},
	}
	cmd.Flags().BoolVar(&opts.all, "all", false, messages.UpdateFlagAll)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, messages.UpdateFlagYes)
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, messages.UpdateFlagDiff)
	cmd.Flags().IntVar(&opts.diffMax, "diff-lines", report.DefaultDiffMaxLines, messages.UpdateFlagDiffLines)
	return cmd
}

func runUpdate(cmd *cobra.Command, a *app, opts *updateOptions, args []string) error {
	ctx := cmd.Context()
	before, err := a.manager.Refresh(ctx)
	if err != nil {
		return err
	}
	manifests := captureManifests(a, before)

	var installed []string
	switch {
	case opts.all:
		pending := before.Pending()
		if len(pending) == 0 {
			_, _ = fmt.Fprintln(a.out, messages.UpdateNothingPending)
			return nil
		}
		ok, err := confirmUpdate(cmd, a.out, opts.yes, recordKeys(pending))
		if err != nil || !ok {
			return err
		}
		result, err := a.manager.UpdateAll(ctx)
		for i, pass := range result.Passes {
			if len(pass) > 0 {
				_, _ = fmt.Fprintf(a.out, messages.UpdatePassFmt, i+1, strings.Join(pass, ", "))
			}
		}
		if err != nil {
			return err
		}
		installed = result.Installed()
	case len(args) > 0:
		ok, err := confirmUpdate(cmd, a.out, opts.yes, args)
		if err != nil || !ok {
			return err
		}
		if installed, err = updateEach(cmd, a, args); err != nil {
			return err
		}
	default:
		pending := before.Pending()
		if len(pending) == 0 {
			_, _ = fmt.Fprintln(a.out, messages.UpdateNothingPending)
			return nil
		}
		var keys []string
		if opts.yes {
			keys = recordKeys(pending)
		} else {
			if !isTerminal() {
				return errors.New(messages.UpdateNeedsSelection)
			}
			keys, err = selectModsFunc(pending)
			if errors.Is(err, errSelectionCancelled) {
				_, _ = fmt.Fprintln(a.out, messages.UpdateCancelled)
				return nil
			}
			if err != nil {
				return err
			}
		}
		if len(keys) == 0 {
			_, _ = fmt.Fprintln(a.out, messages.UpdateNothingSelected)
			return nil
		}
		if installed, err = updateEach(cmd, a, keys); err != nil {
			return err
		}
	}

	after, _ := a.manager.Snapshot()
	report.WriteChanges(a.out, modinfo.Changes(before, after))
	if opts.showDiff {
		writeDiffs(a, manifests, installed, opts.diffMax)
	}
	report.WriteSummary(a.out, after)
	return nil
}

// updateEach installs keys one at a time and stops at the first failure.
func updateEach(cmd *cobra.Command, a *app, keys []string) ([]string, error) {
	var done []string
	for _, key := range keys {
		if _, err := a.manager.UpdateOne(cmd.Context(), key); err != nil {
			return done, err
		}
		done = append(done, key)
	}
	return done, nil
}

// confirmUpdate asks before installing unless --yes was given. Without a terminal --yes is required.
func confirmUpdate(cmd *cobra.Command, out io.Writer, yes bool, keys []string) (bool, error) {
	if yes {
		return true, nil
	}
	if !isTerminal() {
		return false, errors.New(messages.UpdateRequiresYes)
	}
	if err := printList(out, messages.UpdateConfirmHeader, keys); err != nil {
		return false, err
	}
	ok, err := promptYesNo(cmd.InOrStdin(), out, messages.UpdateConfirmPrompt, true)
	if err != nil {
		return false, err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, messages.UpdateCancelled)
	}
	return ok, nil
}

// captureManifests reads each mod's manifest text before anything is installed.
func captureManifests(a *app, snap modinfo.Snapshot) map[string]string {
	out := make(map[string]string, len(snap.Records))
	for _, rec := range snap.Records {
		out[rec.Key] = readManifest(a, rec.Key)
	}
	return out
}

func readManifest(a *app, key string) string {
	data, err := os.ReadFile(filepath.Join(a.modsDir, key, a.cfg.Mods.Manifest))
	if err != nil {
		return ""
	}
	return string(data)
}

func writeDiffs(a *app, before map[string]string, keys []string, maxLines int) {
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		diff, _ := report.ManifestDiff(key, before[key], readManifest(a, key), maxLines)
		if diff == "" {
			_, _ = fmt.Fprintf(a.out, messages.UpdateDiffUnchangedFmt, key)
			continue
		}
		_, _ = fmt.Fprint(a.out, report.ColorDiff(diff))
	}
}

func recordKeys(records []modinfo.Record) []string {
	keys := make([]string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key
	}
	return keys
}
