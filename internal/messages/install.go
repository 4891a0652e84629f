package messages

// Install messages.
const (
	InstallModsDirRequired    = "mods directory is required"
	InstallUnknownStrategyFmt = "unknown install strategy %q (want staged or replace)"
	InstallRefusedFmt         = "%w: %s"
	InstallInvalidKeyFmt      = "%w: %q is not a mod directory name"
	InstallPhaseFailedFmt     = "install %s: %s: %w"
	InstallDownloadingFmt     = "Downloading %s from %s\n"
	InstallInstalledFmt       = "Installed %s\n"
	InstallCleanupWarningFmt  = "Warning: failed to remove %s: %v\n"

	InstallDownloadFailedFmt           = "%w: download %s: %w"
	InstallDownloadTimeoutFmt          = "%w: download %s timed out"
	InstallDownload404Fmt              = "%w: %s not found (404)"
	InstallDownloadUnexpectedStatusFmt = "%w: download %s: unexpected status %s"
	InstallDownloadTooLargeFmt         = "%w: download %s exceeds %d bytes"
	InstallTruncateTempFileFmt         = "%w: reset temp file: %w"
	InstallCreateTempFileFmt           = "%w: create temp file: %w"
	InstallCloseTempFileFmt            = "%w: close temp file: %w"

	InstallArchiveOpenFmt        = "%w: open archive: %w"
	InstallArchiveUnsafePathFmt  = "%w: entry %q escapes the target directory"
	InstallArchiveReadEntryFmt   = "%w: read entry %s: %w"
	InstallArchiveMissingRootFmt = "%w: archive has no %s/ directory at its root"

	InstallCreateDirFmt = "%w: create %s: %w"
	InstallWriteFileFmt = "%w: write %s: %w"
	InstallRemoveDirFmt = "%w: remove %s: %w"
	InstallRenameFmt    = "%w: rename %s to %s: %w"
	InstallStatFmt      = "%w: stat %s: %w"
	InstallOpenLockFmt  = "%w: open lock %s: %w"
	InstallLockFmt      = "%w: lock %s: %w"

	InstallLockTimeoutFmt = "timed out after %s waiting for another install"
)
