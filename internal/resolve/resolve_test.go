package resolve

import (
	"testing"
	"time"

	"github.com/conn-castle/modsync/internal/catalog"
	"github.com/conn-castle/modsync/internal/jsonval"
	"github.com/conn-castle/modsync/internal/manifest"
	"github.com/conn-castle/modsync/internal/modinfo"
)

func record(id string, rev string) modinfo.Record {
	rec := modinfo.Record{Key: "mod"}
	if id != "" {
		rec.Manifest.Updates = []manifest.Ref{{Identifier: jsonval.String(id), Revision: jsonval.String(rev)}}
	}
	return rec
}

func TestResolve(t *testing.T) {
	date := time.Date(2017, 3, 4, 5, 6, 7, 0, time.UTC)
	entries := map[string]catalog.Entry{
		"ida": {Revision: "5", Date: jsonval.Time{Time: date}},
	}

	tests := []struct {
		name      string
		rec       modinfo.Record
		wantState modinfo.State
		wantAvail string
	}{
		{name: "equal revision", rec: record("ida", "5"), wantState: modinfo.UpToDate, wantAvail: "5"},
		{name: "different revision", rec: record("ida", "4"), wantState: modinfo.UpdateAvailable, wantAvail: "5"},
		{name: "newer local revision is still a difference", rec: record("ida", "6"), wantState: modinfo.UpdateAvailable, wantAvail: "5"},
		{name: "no identifier", rec: record("", ""), wantState: modinfo.LocalOnly},
		{name: "unknown to catalog", rec: record("idx", "1"), wantState: modinfo.LocalOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.rec, entries)
			if got.State != tt.wantState {
				t.Fatalf("state = %s, want %s", got.State, tt.wantState)
			}
			if got.Available != tt.wantAvail {
				t.Fatalf("available = %q, want %q", got.Available, tt.wantAvail)
			}
			if tt.wantAvail != "" && !got.AvailableDate.Equal(date) {
				t.Fatalf("available date = %v, want %v", got.AvailableDate, date)
			}
		})
	}
}

func TestResolve_ExternallyManagedIgnoresCatalog(t *testing.T) {
	rec := record("ida", "1")
	rec.ExternallyManaged = true
	got := Resolve(rec, map[string]catalog.Entry{"ida": {Revision: "2"}})
	if got.State != modinfo.ExternallyManaged {
		t.Fatalf("state = %s, want externally-managed", got.State)
	}
	if got.Available != "" {
		t.Fatalf("available = %q, want empty", got.Available)
	}
}

func TestResolve_MissingEntryKeepsCurrentState(t *testing.T) {
	rec := record("ida", "1")
	rec.State = modinfo.UpdateAvailable
	rec.Available = "2"
	got := Resolve(rec, nil)
	if got.State != modinfo.UpdateAvailable || got.Available != "2" {
		t.Fatalf("unexpected resolution %+v", got)
	}
}

func TestApply_ReturnsCopy(t *testing.T) {
	rec := record("ida", "1")
	out := Apply(rec, map[string]catalog.Entry{"ida": {Revision: "2"}})
	if out.State != modinfo.UpdateAvailable || out.Available != "2" {
		t.Fatalf("unexpected record %+v", out)
	}
	if rec.State != modinfo.LocalOnly || rec.Available != "" {
		t.Fatalf("input record modified: %+v", rec)
	}
}
