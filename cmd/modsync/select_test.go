package main

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/modsync/internal/modinfo"
)

func stubForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	runFormFunc = fn
	t.Cleanup(func() { runFormFunc = orig })
}

func TestSelectMods_Aborted(t *testing.T) {
	stubForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	_, err := selectMods([]modinfo.Record{{Key: "modA", State: modinfo.UpdateAvailable}})
	if !errors.Is(err, errSelectionCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSelectMods_FormError(t *testing.T) {
	boom := errors.New("no tty")
	stubForm(t, func(*huh.Form) error { return boom })

	_, err := selectMods([]modinfo.Record{{Key: "modA"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected form error, got %v", err)
	}
}

func TestSelectMods_FormRuns(t *testing.T) {
	var ran bool
	stubForm(t, func(form *huh.Form) error {
		ran = form != nil
		return nil
	})

	if _, err := selectMods([]modinfo.Record{{Key: "modA"}, {Key: "modB"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatalf("expected form to run")
	}
}

func TestDash(t *testing.T) {
	if dash("") != "-" || dash("3") != "3" {
		t.Fatalf("unexpected dash output")
	}
}
