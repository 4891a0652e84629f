package messages

// Config messages.
const (
	ConfigResolvePathFmt      = "resolve config path: %w"
	ConfigMissingFileFmt      = "failed to read config %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v"
	ConfigFieldRequiredFmt    = "%s: %s is required"
	ConfigPlainNameFmt        = "%s: %s must be a plain file name, got %q"
	ConfigPositiveIntFmt      = "%s: %s must be a positive integer, got %d"
	ConfigStrategyInvalidFmt  = "%s: install.strategy must be staged or replace, got %q"
	ConfigExpandModsDirFmt    = "expand mods dir %s: %w"
	ConfigModsDirRequired     = "no mods directory configured; set mods.dir, $MODSYNC_MODS_DIR or --mods-dir"
	ConfigEncodeFmt           = "encode config: %w"
	ConfigExistsFmt           = "%w: %s (use --force to overwrite)"
	ConfigCreateDirFmt        = "failed to create directory %s: %w"
	ConfigWriteFmt            = "failed to write %s: %w"

	ConfigFieldModsDir               = "Directory holding one sub-directory per mod"
	ConfigFieldManifest              = "Manifest file name inside each mod directory"
	ConfigFieldExternalMarker        = "Sub-directory that marks a mod as managed outside modsync"
	ConfigFieldCatalogURL            = "Update catalog endpoint"
	ConfigFieldCatalogTimeout        = "Catalog request timeout in seconds"
	ConfigFieldDownloadURL           = "Archive download URL template; {identifier} is replaced"
	ConfigFieldNotesURL              = "Patch-notes URL template; {identifier} is replaced"
	ConfigFieldMaxBytes              = "Largest archive accepted, in bytes"
	ConfigFieldDownloadTimeout       = "Archive download timeout in seconds"
	ConfigFieldStrategy              = "How a new archive replaces the installed mod"
	ConfigFieldLockTimeout           = "Seconds to wait for another install of the same mod"
	ConfigFieldColor                 = "Coloured terminal output"
	ConfigStrategyStagedDescription  = "Extract to a staging directory and swap it in; a bad archive keeps the installed mod"
	ConfigStrategyReplaceDescription = "Delete the installed mod, then extract into the mods directory"
)
