// Package modinfo holds the per-mod record produced by a refresh cycle and
// the immutable snapshot that collects them.
package modinfo

import (
	"errors"
	"sort"
	"time"

	"github.com/conn-castle/modsync/internal/manifest"
)

var (
	// ErrExternallyManaged reports an operation refused because the mod is managed out of band.
	ErrExternallyManaged = errors.New("mod is externally managed")
	// ErrNotInCatalog reports an operation that needs a catalog entry the mod does not have.
	ErrNotInCatalog = errors.New("mod is not tracked by the catalog")
)

// Record is one discovered mod. Records are built fresh on every refresh and never
// patched in place; the resolve step returns modified copies.
type Record struct {
	// Key is the mod's directory name and its stable local identity.
	Key               string
	Manifest          manifest.Manifest
	ExternallyManaged bool
	RepairApplied     bool
	State             State
	// Available is the catalog revision, empty until resolved.
	Available     string
	AvailableDate time.Time
}

// Name returns the manifest name, falling back to the directory name.
func (r Record) Name() string {
	if name := r.Manifest.Name.String(); name != "" {
		return name
	}
	return r.Key
}

// Identifier returns the catalog identifier of the mod's primary update entry.
func (r Record) Identifier() string {
	return r.Manifest.Identifier()
}

// Revision returns the locally installed revision of the primary update entry.
func (r Record) Revision() string {
	return r.Manifest.Revision()
}

// Dependencies returns the manifest's updates entries.
func (r Record) Dependencies() []manifest.Ref {
	return r.Manifest.Updates
}

// Libraries returns the manifest's libraries entries.
func (r Record) Libraries() []manifest.Ref {
	return r.Manifest.Libraries
}

// Installable reports whether the install pipeline can act on the record.
func (r Record) Installable() bool {
	if r.ExternallyManaged || r.Identifier() == "" {
		return false
	}
	return r.State == UpToDate || r.State == UpdateAvailable
}

// Skipped is a mod directory left out of a snapshot because its manifest could not be read.
type Skipped struct {
	Key string
	Err error
}

// Snapshot is the result of one refresh cycle. A new snapshot replaces the old one wholesale.
type Snapshot struct {
	Records     []Record
	Skipped     []Skipped
	RefreshedAt time.Time
}

// Find returns the record with the given key.
func (s Snapshot) Find(key string) (Record, bool) {
	for _, rec := range s.Records {
		if rec.Key == key {
			return rec, true
		}
	}
	return Record{}, false
}

// Pending returns the records in UpdateAvailable state, in snapshot order.
func (s Snapshot) Pending() []Record {
	var out []Record
	for _, rec := range s.Records {
		if rec.State == UpdateAvailable && rec.Installable() {
			out = append(out, rec)
		}
	}
	return out
}

// Counts returns the number of records per state.
func (s Snapshot) Counts() map[State]int {
	counts := make(map[State]int, len(stateNames))
	for _, rec := range s.Records {
		counts[rec.State]++
	}
	return counts
}

// Keys returns the sorted record keys.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Records))
	for _, rec := range s.Records {
		keys = append(keys, rec.Key)
	}
	sort.Strings(keys)
	return keys
}
