// Package resolve assigns update states by comparing local revisions with catalog entries.
package resolve

import (
	"time"

	"github.com/conn-castle/modsync/internal/catalog"
	"github.com/conn-castle/modsync/internal/modinfo"
)

// Resolution is the outcome of resolving one record against the catalog.
type Resolution struct {
	State         modinfo.State
	Available     string
	AvailableDate time.Time
}

// Resolve classifies rec. It is pure: the record and the catalog are not modified.
//
// Rules, first match wins:
//  1. externally managed mods are ExternallyManaged without a catalog lookup;
//  2. mods without a primary identifier are LocalOnly;
//  3. an identifier the catalog does not know keeps the record's current state;
//  4. otherwise equal revisions are UpToDate and different ones UpdateAvailable,
//     and the catalog revision and date are copied for display.
func Resolve(rec modinfo.Record, entries map[string]catalog.Entry) Resolution {
	current := Resolution{State: rec.State, Available: rec.Available, AvailableDate: rec.AvailableDate}
	if rec.ExternallyManaged {
		current.State = modinfo.ExternallyManaged
		return current
	}
	id := rec.Identifier()
	if id == "" {
		current.State = modinfo.LocalOnly
		return current
	}
	entry, ok := entries[id]
	if !ok {
		return current
	}
	res := Resolution{
		Available:     entry.Revision.String(),
		AvailableDate: entry.Date.Time,
		State:         modinfo.UpdateAvailable,
	}
	if rec.Revision() == entry.Revision.String() {
		res.State = modinfo.UpToDate
	}
	return res
}

// Apply returns a copy of rec carrying its resolution.
func Apply(rec modinfo.Record, entries map[string]catalog.Entry) modinfo.Record {
	res := Resolve(rec, entries)
	rec.State = res.State
	rec.Available = res.Available
	rec.AvailableDate = res.AvailableDate
	return rec
}
