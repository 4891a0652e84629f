package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "modsync"
	// RootShort is the short description for the root command.
	RootShort       = "Keep locally installed mods in sync with the update catalog"
	RootLong        = "modsync scans a mods directory, compares every mod's installed revision with the update catalog and installs newer archives."
	RootVersionFlag = "Print version and exit"
	RootConfigFlag  = "Path to the config file (default: $MODSYNC_CONFIG or <user config dir>/modsync/config.toml)"
	RootModsDirFlag = "Mods directory (overrides mods.dir and $MODSYNC_MODS_DIR)"
	RootQuietFlag   = "Suppress warnings and progress output"
	RootNoColorFlag = "Disable coloured output"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	ListUse      = "list"
	ListShort    = "Refresh and show every mod with its update state"
	ListFlagJSON = "Print the snapshot as JSON"
	ListItemFmt  = "  - %s\n"

	UpdateUse   = "update [mod...]"
	UpdateShort = "Install the latest archive for mods with updates"
	UpdateLong  = `Install the latest catalog archive for the named mods.

With --all, every mod with an update is installed in two passes so mods that
appear after the first pass are picked up. Without arguments in a terminal,
a selection list of mods with updates is shown.`
	UpdateFlagAll            = "Update every mod with an available update"
	UpdateFlagYes            = "Do not ask for confirmation"
	UpdateFlagDiff           = "Show a diff of each updated manifest"
	UpdateFlagDiffLines      = "Maximum diff lines shown per manifest"
	UpdateAllWithArgs        = "--all cannot be combined with mod names"
	UpdateNothingPending     = "All mods are up to date."
	UpdateNothingSelected    = "No mods selected."
	UpdateCancelled          = "Update cancelled."
	UpdateSelectionCancelled = "selection cancelled"
	UpdateNeedsSelection     = "no mods named; pass mod names, --all, or --yes to update every mod with an update"
	UpdateRequiresYes        = "update confirmation requires an interactive terminal; re-run with --yes"
	UpdateConfirmHeader      = "Mods to update:"
	UpdateConfirmPrompt      = "Install these updates?"
	UpdateSelectTitle        = "Select mods to update"
	UpdateSelectOptionFmt    = "%s (%s -> %s)"
	UpdatePassFmt            = "Pass %d: installed %s\n"
	UpdateDiffUnchangedFmt   = "%s: manifest unchanged\n"

	CheckUse         = "check"
	CheckShort       = "Lint every manifest without contacting the catalog"
	CheckRepairedFmt = "%s: manifest needed repair (%s)\n"
	CheckInvalidFmt  = "%s: %v\n"
	CheckSummaryFmt  = "%d manifests readable, %d repaired, %d invalid\n"

	NotesUse              = "notes <mod>"
	NotesShort            = "Print the patch-notes URL for a mod"
	NotesURLNotConfigured = "download.notes_url is not configured"
	NotesRefusedFmt       = "%w: %s"

	ConfigUse             = "config"
	ConfigShort           = "Manage the modsync config file"
	ConfigInitUse         = "init"
	ConfigInitShort       = "Write a config file with default values"
	ConfigInitFlagForce   = "Overwrite an existing config file"
	ConfigShowUse         = "show"
	ConfigShowShort       = "Print the effective configuration"
	ConfigWrittenFmt      = "Wrote %s\n"
	ConfigShowSourceFmt   = "# source: %s\n"
	ConfigShowDefaultsFmt = "# built-in defaults (no file at %s)\n"
	ConfigKeysUse         = "keys"
	ConfigKeysShort       = "List every config key with its type and description"
	ConfigKeysHeader      = "KEY\tTYPE\tREQUIRED\tDESCRIPTION"
	ConfigKeysRowFmt      = "%s\t%s\t%s\t%s\n"
	ConfigKeysRequired    = "yes"

	PromptYesDefaultFmt      = "%s [Y/n]: "
	PromptNoDefaultFmt       = "%s [y/N]: "
	PromptRetryYesNo         = "Please enter y or n."
	PromptInvalidResponseFmt = "invalid response %q"
)
