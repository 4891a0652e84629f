// Package updateset merges the update and library identifiers of every mod
// into the single deduplicated set sent to the catalog.
package updateset

import (
	"github.com/conn-castle/modsync/internal/manifest"
	"github.com/conn-castle/modsync/internal/modinfo"
)

// Set maps each identifier to the one ref chosen to represent it.
// Identifiers keep the order in which they were first seen.
type Set struct {
	order []string
	refs  map[string]manifest.Ref
}

// Build collects refs from all records. Primary update entries go in first,
// then library entries. A ref is added when its identifier is new and
// replaces an existing optional entry when it is itself required; otherwise
// the first seen entry wins. A required entry is never displaced.
// Externally managed records contribute nothing.
func Build(records []modinfo.Record) Set {
	set := Set{refs: make(map[string]manifest.Ref)}
	for _, rec := range records {
		if rec.ExternallyManaged {
			continue
		}
		for _, ref := range rec.Dependencies() {
			if ref.ID() == "" {
				continue
			}
			set.merge(ref)
		}
	}
	for _, rec := range records {
		if rec.ExternallyManaged {
			continue
		}
		for _, ref := range rec.Libraries() {
			if ref.ID() == "" {
				continue
			}
			set.merge(ref)
		}
	}
	return set
}

func (s *Set) merge(ref manifest.Ref) {
	existing, ok := s.refs[ref.ID()]
	if !ok || (existing.Optional && !ref.Optional) {
		s.put(ref)
	}
}

func (s *Set) put(ref manifest.Ref) {
	id := ref.ID()
	if _, ok := s.refs[id]; !ok {
		s.order = append(s.order, id)
	}
	s.refs[id] = ref
}

// Identifiers returns the identifiers in request order.
func (s Set) Identifiers() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the ref chosen for id.
func (s Set) Get(id string) (manifest.Ref, bool) {
	ref, ok := s.refs[id]
	return ref, ok
}

// Len returns the number of identifiers.
func (s Set) Len() int {
	return len(s.order)
}
