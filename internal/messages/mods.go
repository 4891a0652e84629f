package messages

// Manifest, state, catalog and report messages.
const (
	JSONValueNotScalarFmt = "expected a string, number, boolean or null, got %s"
	ManifestNotObject     = "manifest is not a JSON object"

	StateLabelLocalOnly         = "Local only"
	StateLabelUpToDate          = "Up to date"
	StateLabelUpdateAvailable   = "Update available"
	StateLabelExternallyManaged = "Externally managed"
	StateUnknownFmt             = "unknown state %q"

	CatalogRequestFailedFmt    = "%w: request %s: %w"
	CatalogUnexpectedStatusFmt = "%w: %s returned %s"
	CatalogResponseTooLargeFmt = "%w: response from %s exceeds %d bytes"
	CatalogDecodeFailedFmt     = "%w: decode response: %w"

	ManagerModsDirRequired           = "mods directory is required"
	ManagerCatalogRequired           = "catalog client is required"
	ManagerInstallerRequired         = "installer is required for updates"
	ManagerReadModsDirFmt            = "failed to read mods directory %s: %w"
	ManagerModNotFoundFmt            = "%w: %s"
	ManagerModMissingAfterInstallFmt = "%w: %s is missing after install"
	ManagerRefuseFmt                 = "%w: %s"
	ManagerSkippedManifestFmt        = "Warning: skipped %s: %s\n"

	ReportTableHeader       = "MOD\tNAME\tSTATE\tINSTALLED\tAVAILABLE\tNOTES"
	ReportTableRowFmt       = "%s\t%s\t%s\t%s\t%s\t%s\n"
	ReportRepairedNote      = "repaired"
	ReportNoMods            = "No mods found."
	ReportSummaryFmt        = "%d mods: %s\n"
	ReportChangeAddedFmt    = "%s: new (%s)\n"
	ReportChangeRemovedFmt  = "%s: removed\n"
	ReportChangeStateFmt    = "%s: %s -> %s (%s -> %s)\n"
	ReportChangeRevisionFmt = "%s: revision %s -> %s\n"
	ReportDiffTruncatedFmt  = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"
)
