package modinfo

import (
	"fmt"
	"strings"

	"github.com/conn-castle/modsync/internal/messages"
)

// State is the update classification of one mod, recomputed on every refresh.
type State int

const (
	// LocalOnly mods have no catalog identifier, or the catalog has no entry for it.
	LocalOnly State = iota
	// UpToDate mods have a local revision equal to the catalog revision.
	UpToDate
	// UpdateAvailable mods have a local revision that differs from the catalog revision.
	UpdateAvailable
	// ExternallyManaged mods are updated by an out-of-band mechanism (a version-control checkout)
	// and never take part in catalog queries or installs.
	ExternallyManaged
)

var stateNames = [...]string{
	LocalOnly:         "local-only",
	UpToDate:          "up-to-date",
	UpdateAvailable:   "update-available",
	ExternallyManaged: "externally-managed",
}

var stateLabels = [...]string{
	LocalOnly:         messages.StateLabelLocalOnly,
	UpToDate:          messages.StateLabelUpToDate,
	UpdateAvailable:   messages.StateLabelUpdateAvailable,
	ExternallyManaged: messages.StateLabelExternallyManaged,
}

// States lists every state in declaration order.
func States() []State {
	return []State{LocalOnly, UpToDate, UpdateAvailable, ExternallyManaged}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= LocalOnly && s <= ExternallyManaged
}

// String returns the machine-readable state name.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Label returns the human-readable state name.
func (s State) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return stateLabels[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf(messages.StateUnknownFmt, s.String())
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseState converts a state name back into a State.
func ParseState(raw string) (State, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for i, candidate := range stateNames {
		if candidate == name {
			return State(i), nil
		}
	}
	return LocalOnly, fmt.Errorf(messages.StateUnknownFmt, raw)
}
