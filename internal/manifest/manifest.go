// Package manifest decodes per-mod mod.txt manifests, repairing the common
// hand-editing mistakes that make them invalid JSON.
package manifest

import (
	"encoding/json"

	"github.com/conn-castle/modsync/internal/jsonval"
)

// Manifest is the decoded content of one mod's manifest file.
// The mod's identity (its directory name) is not part of the file and is assigned by the scan.
type Manifest struct {
	Name        jsonval.String `json:"name"`
	Description jsonval.String `json:"description,omitempty"`
	Author      jsonval.String `json:"author,omitempty"`
	Contact     jsonval.String `json:"contact,omitempty"`
	Version     jsonval.String `json:"version,omitempty"`
	Priority    jsonval.String `json:"priority,omitempty"`
	Available   jsonval.String `json:"available,omitempty"`
	State       jsonval.String `json:"state,omitempty"`
	Date        jsonval.Time   `json:"date"`
	Updates     []Ref          `json:"updates,omitempty"`
	Libraries   []Ref          `json:"libraries,omitempty"`

	// Loader payload this tool never interprets; kept verbatim so it round-trips.
	PersistScripts json.RawMessage `json:"persist_scripts,omitempty"`
	PreHooks       json.RawMessage `json:"pre_hooks,omitempty"`
	Hooks          json.RawMessage `json:"hooks,omitempty"`
	Keybinds       json.RawMessage `json:"keybinds,omitempty"`
}

// Ref is one version-tracked item declared in the updates or libraries list.
type Ref struct {
	Revision      jsonval.String `json:"revision"`
	Identifier    jsonval.String `json:"identifier"`
	DisplayName   jsonval.String `json:"display_name,omitempty"`
	InstallDir    jsonval.String `json:"install_dir,omitempty"`
	InstallFolder jsonval.String `json:"install_folder,omitempty"`
	Optional      bool           `json:"optional,omitempty"`
}

// ID returns the catalog identifier.
func (r Ref) ID() string {
	return string(r.Identifier)
}

// Nested reports whether the ref installs into a sub-path instead of being the mod itself.
func (r Ref) Nested() bool {
	return r.InstallDir != ""
}

// Primary returns the mod's own update entry: the first updates entry without an install_dir.
func (m Manifest) Primary() (Ref, bool) {
	for _, ref := range m.Updates {
		if !ref.Nested() {
			return ref, true
		}
	}
	return Ref{}, false
}

// Identifier returns the primary entry's identifier, or "" when there is none.
func (m Manifest) Identifier() string {
	ref, ok := m.Primary()
	if !ok {
		return ""
	}
	return ref.ID()
}

// Revision returns the primary entry's revision, or "" when there is none.
func (m Manifest) Revision() string {
	ref, ok := m.Primary()
	if !ok {
		return ""
	}
	return string(ref.Revision)
}
