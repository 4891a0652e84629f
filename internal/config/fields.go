package config

import "github.com/conn-castle/modsync/internal/messages"

// FieldType classifies the kind of value a config field accepts.
type FieldType string

const (
	// FieldBool accepts true or false.
	FieldBool FieldType = "bool"
	// FieldEnum accepts one of a fixed set of options.
	FieldEnum FieldType = "enum"
	// FieldFreetext accepts arbitrary string input.
	FieldFreetext FieldType = "freetext"
	// FieldPositiveInt accepts a positive integer.
	FieldPositiveInt FieldType = "positive_int"
)

// FieldOption describes a single selectable value for a field.
type FieldOption struct {
	Value       string
	Description string // empty for options without descriptions
}

// FieldDef describes a single config field's type, constraints, and valid options.
type FieldDef struct {
	Key         string
	Type        FieldType
	Required    bool
	Description string
	Options     []FieldOption
}

// fields is the canonical ordered registry of config fields, in file order.
var fields = []FieldDef{
	{Key: "mods.dir", Type: FieldFreetext, Required: true, Description: messages.ConfigFieldModsDir},
	{Key: "mods.manifest", Type: FieldFreetext, Required: true, Description: messages.ConfigFieldManifest},
	{Key: "mods.external_marker", Type: FieldFreetext, Required: true, Description: messages.ConfigFieldExternalMarker},
	{Key: "catalog.url", Type: FieldFreetext, Required: true, Description: messages.ConfigFieldCatalogURL},
	{Key: "catalog.timeout_seconds", Type: FieldPositiveInt, Required: true, Description: messages.ConfigFieldCatalogTimeout},
	{Key: "download.url", Type: FieldFreetext, Required: true, Description: messages.ConfigFieldDownloadURL},
	{Key: "download.notes_url", Type: FieldFreetext, Description: messages.ConfigFieldNotesURL},
	{Key: "download.max_bytes", Type: FieldPositiveInt, Required: true, Description: messages.ConfigFieldMaxBytes},
	{Key: "download.timeout_seconds", Type: FieldPositiveInt, Required: true, Description: messages.ConfigFieldDownloadTimeout},
	{
		Key:         "install.strategy",
		Type:        FieldEnum,
		Required:    true,
		Description: messages.ConfigFieldStrategy,
		Options: []FieldOption{
			{Value: "staged", Description: messages.ConfigStrategyStagedDescription},
			{Value: "replace", Description: messages.ConfigStrategyReplaceDescription},
		},
	},
	{Key: "install.lock_timeout_seconds", Type: FieldPositiveInt, Required: true, Description: messages.ConfigFieldLockTimeout},
	{Key: "output.color", Type: FieldBool, Description: messages.ConfigFieldColor},
}

// Fields returns a copy of the field registry.
func Fields() []FieldDef {
	out := make([]FieldDef, len(fields))
	copy(out, fields)
	return out
}

// LookupField returns the definition for key.
func LookupField(key string) (FieldDef, bool) {
	for _, field := range fields {
		if field.Key == key {
			return field, true
		}
	}
	return FieldDef{}, false
}

// validOption reports whether value is one of the options of the enum field key.
func validOption(key string, value string) bool {
	field, ok := LookupField(key)
	if !ok {
		return false
	}
	for _, opt := range field.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
