package modinfo

import "sort"

// ChangeKind classifies a difference between two snapshots.
type ChangeKind string

const (
	// ChangeAdded marks a mod present only in the newer snapshot.
	ChangeAdded ChangeKind = "added"
	// ChangeRemoved marks a mod present only in the older snapshot.
	ChangeRemoved ChangeKind = "removed"
	// ChangeState marks a mod whose update state changed.
	ChangeState ChangeKind = "state"
	// ChangeRevision marks a mod whose installed revision changed while its state did not.
	ChangeRevision ChangeKind = "revision"
)

// Change is one per-mod difference between two snapshots.
type Change struct {
	Key          string
	Kind         ChangeKind
	From         State
	To           State
	FromRevision string
	ToRevision   string
}

// Changes compares prev and next for display. Results are sorted by key.
// A mod whose state and revision both changed is reported once, as a state change.
func Changes(prev Snapshot, next Snapshot) []Change {
	before := make(map[string]Record, len(prev.Records))
	for _, rec := range prev.Records {
		before[rec.Key] = rec
	}

	var out []Change
	seen := make(map[string]bool, len(next.Records))
	for _, rec := range next.Records {
		seen[rec.Key] = true
		old, ok := before[rec.Key]
		switch {
		case !ok:
			out = append(out, Change{Key: rec.Key, Kind: ChangeAdded, To: rec.State, ToRevision: rec.Revision()})
		case old.State != rec.State:
			out = append(out, Change{
				Key:          rec.Key,
				Kind:         ChangeState,
				From:         old.State,
				To:           rec.State,
				FromRevision: old.Revision(),
				ToRevision:   rec.Revision(),
			})
		case old.Revision() != rec.Revision():
			out = append(out, Change{
				Key:          rec.Key,
				Kind:         ChangeRevision,
				From:         old.State,
				To:           rec.State,
				FromRevision: old.Revision(),
				ToRevision:   rec.Revision(),
			})
		}
	}
	for _, rec := range prev.Records {
		if !seen[rec.Key] {
			out = append(out, Change{Key: rec.Key, Kind: ChangeRemoved, From: rec.State, FromRevision: rec.Revision()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
