// Package report renders snapshots, changes and manifest diffs for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
)

// StateText returns the state's label coloured for display.
func StateText(state modinfo.State) string {
	switch state {
	case modinfo.UpToDate:
		return color.GreenString(state.Label())
	case modinfo.UpdateAvailable:
		return color.YellowString(state.Label())
	case modinfo.ExternallyManaged:
		return color.CyanString(state.Label())
	default:
		return state.Label()
	}
}

// WriteTable prints one row per record. Skipped mods are left to the caller's
// warnings and to the JSON document.
func WriteTable(out io.Writer, snap modinfo.Snapshot) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, messages.ReportTableHeader)
	for _, rec := range snap.Records {
		notes := ""
		if rec.RepairApplied {
			notes = messages.ReportRepairedNote
		}
		_, _ = fmt.Fprintf(tw, messages.ReportTableRowFmt,
			rec.Key,
			rec.Name(),
			StateText(rec.State),
			dash(rec.Revision()),
			dash(rec.Available),
			notes,
		)
	}
	return tw.Flush()
}

// WriteSummary prints the number of mods per state on one line.
func WriteSummary(out io.Writer, snap modinfo.Snapshot) {
	counts := snap.Counts()
	parts := make([]string, 0, len(modinfo.States()))
	for _, state := range modinfo.States() {
		if counts[state] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", counts[state], state.Label()))
	}
	if len(parts) == 0 {
		_, _ = fmt.Fprintln(out, messages.ReportNoMods)
		return
	}
	_, _ = fmt.Fprintf(out, messages.ReportSummaryFmt, len(snap.Records), strings.Join(parts, ", "))
}

// WriteChanges prints one line per difference between two snapshots.
func WriteChanges(out io.Writer, changes []modinfo.Change) {
	for _, change := range changes {
		switch change.Kind {
		case modinfo.ChangeAdded:
			_, _ = fmt.Fprintf(out, messages.ReportChangeAddedFmt, change.Key, StateText(change.To))
		case modinfo.ChangeRemoved:
			_, _ = fmt.Fprintf(out, messages.ReportChangeRemovedFmt, change.Key)
		case modinfo.ChangeState:
			_, _ = fmt.Fprintf(out, messages.ReportChangeStateFmt, change.Key, StateText(change.From), StateText(change.To), dash(change.FromRevision), dash(change.ToRevision))
		case modinfo.ChangeRevision:
			_, _ = fmt.Fprintf(out, messages.ReportChangeRevisionFmt, change.Key, dash(change.FromRevision), dash(change.ToRevision))
		}
	}
}

// Listing is the JSON form of one record.
type Listing struct {
	Key               string        `json:"key"`
	Name              string        `json:"name"`
	Identifier        string        `json:"identifier,omitempty"`
	Revision          string        `json:"revision,omitempty"`
	Available         string        `json:"available,omitempty"`
	AvailableDate     *time.Time    `json:"available_date,omitempty"`
	State             modinfo.State `json:"state"`
	ExternallyManaged bool          `json:"externally_managed"`
	RepairApplied     bool          `json:"repair_applied"`
}

// SkippedListing is the JSON form of a mod left out of the snapshot.
type SkippedListing struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Document is the JSON form of a snapshot.
type Document struct {
	RefreshedAt time.Time        `json:"refreshed_at"`
	Mods        []Listing        `json:"mods"`
	Skipped     []SkippedListing `json:"skipped,omitempty"`
}

// WriteJSON prints the snapshot as indented JSON.
func WriteJSON(out io.Writer, snap modinfo.Snapshot) error {
	doc := Document{RefreshedAt: snap.RefreshedAt.UTC(), Mods: make([]Listing, 0, len(snap.Records))}
	for _, rec := range snap.Records {
		listing := Listing{
			Key:               rec.Key,
			Name:              rec.Name(),
			Identifier:        rec.Identifier(),
			Revision:          rec.Revision(),
			Available:         rec.Available,
			State:             rec.State,
			ExternallyManaged: rec.ExternallyManaged,
			RepairApplied:     rec.RepairApplied,
		}
		if !rec.AvailableDate.IsZero() {
			date := rec.AvailableDate.UTC()
			listing.AvailableDate = &date
		}
		doc.Mods = append(doc.Mods, listing)
	}
	for _, skipped := range snap.Skipped {
		doc.Skipped = append(doc.Skipped, SkippedListing{Key: skipped.Key, Error: skipped.Err.Error()})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

var (
	greenText = color.GreenString
	redText   = color.RedString
)
