package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

var errSelectionCancelled = errors.New(messages.UpdateSelectionCancelled)

// selectMods shows a multi-select of records with every entry preselected
// and returns the chosen keys in record order.
func selectMods(records []modinfo.Record) ([]string, error) {
	options := make([]huh.Option[string], len(records))
	for i, rec := range records {
		label := fmt.Sprintf(messages.UpdateSelectOptionFmt, rec.Key, dash(rec.Revision()), dash(rec.Available))
		options[i] = huh.NewOption(label, rec.Key).Selected(true)
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(messages.UpdateSelectTitle).
				Filterable(false).
				Options(options...).
				Value(&selected),
		),
	)
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, errSelectionCancelled
		}
		return nil, err
	}

	chosen := make(map[string]bool, len(selected))
	for _, key := range selected {
		chosen[key] = true
	}
	var ordered []string
	for _, rec := range records {
		if chosen[rec.Key] {
			ordered = append(ordered, rec.Key)
		}
	}
	return ordered, nil
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
