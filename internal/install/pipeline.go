// Package install downloads a mod's latest archive and replaces its directory.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
)

var (
	// ErrNetwork reports a failed or rejected archive download.
	ErrNetwork = errors.New("download failed")
	// ErrArchive reports an archive that could not be read or has an unsafe or unexpected layout.
	ErrArchive = errors.New("invalid archive")
	// ErrFilesystem reports a directory that could not be created, removed or renamed.
	ErrFilesystem = errors.New("filesystem operation failed")
	// ErrExternallyManaged is returned for mods updated out of band.
	ErrExternallyManaged = modinfo.ErrExternallyManaged
)

const (
	// DefaultURLTemplate is the archive download endpoint. {identifier} is replaced per mod.
	DefaultURLTemplate = "http://download.paydaymods.com/download/latest/{identifier}"
	// IdentifierPlaceholder marks where the identifier goes in a URL template.
	IdentifierPlaceholder = "{identifier}"

	// WorkDirName is the reserved directory under the mods directory for staging and locks.
	WorkDirName = ".modsync"

	defaultDownloadTimeout = 5 * time.Minute
)

// Phase names the install step that failed.
type Phase string

const (
	PhaseLock     Phase = "lock"
	PhaseDownload Phase = "download"
	PhaseExtract  Phase = "extract"
	PhaseReplace  Phase = "replace"
)

// Strategy selects how the new archive takes the place of the installed directory.
type Strategy string

const (
	// StrategyStaged extracts next to the mods and swaps directories with renames,
	// so a bad archive leaves the installed mod untouched.
	StrategyStaged Strategy = "staged"
	// StrategyReplace deletes the installed directory and extracts straight into the mods directory.
	StrategyReplace Strategy = "replace"
)

// ParseStrategy validates a configured strategy name. Empty selects StrategyStaged.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StrategyStaged:
		return StrategyStaged, nil
	case StrategyReplace:
		return StrategyReplace, nil
	default:
		return "", fmt.Errorf(messages.InstallUnknownStrategyFmt, raw)
	}
}

// Options configures a Pipeline.
type Options struct {
	ModsDir     string
	URLTemplate string
	Strategy    Strategy
	MaxBytes    int64
	LockTimeout time.Duration
	HTTP        *http.Client
	System      System
	// Progress receives one line per phase; nil discards.
	Progress io.Writer
}

// Pipeline installs mods. It is safe for concurrent use; installs of the same
// mod are serialised in-process and across processes.
type Pipeline struct {
	modsDir     string
	urlTemplate string
	strategy    Strategy
	maxBytes    int64
	lockTimeout time.Duration
	client      *http.Client
	sys         System
	progress    io.Writer
	keys        keyedMutex
}

// New validates opts and returns a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if strings.TrimSpace(opts.ModsDir) == "" {
		return nil, errors.New(messages.InstallModsDirRequired)
	}
	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		modsDir:     opts.ModsDir,
		urlTemplate: opts.URLTemplate,
		strategy:    strategy,
		maxBytes:    opts.MaxBytes,
		lockTimeout: opts.LockTimeout,
		client:      opts.HTTP,
		sys:         opts.System,
		progress:    opts.Progress,
	}
	if strings.TrimSpace(p.urlTemplate) == "" {
		p.urlTemplate = DefaultURLTemplate
	}
	if p.maxBytes <= 0 {
		p.maxBytes = DefaultMaxDownloadBytes
	}
	if p.lockTimeout <= 0 {
		p.lockTimeout = DefaultLockTimeout
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: defaultDownloadTimeout}
	}
	if p.sys == nil {
		p.sys = RealSystem{}
	}
	if p.progress == nil {
		p.progress = io.Discard
	}
	return p, nil
}

// Strategy returns the configured strategy.
func (p *Pipeline) Strategy() Strategy {
	return p.strategy
}

// ExpandURL substitutes the escaped identifier into template. A template
// without the placeholder gets the identifier appended.
func ExpandURL(template string, identifier string) string {
	escaped := url.PathEscape(identifier)
	if strings.Contains(template, IdentifierPlaceholder) {
		return strings.ReplaceAll(template, IdentifierPlaceholder, escaped)
	}
	return template + escaped
}

// Install downloads the latest archive for rec and replaces its directory.
// The downloaded temp file is removed in every outcome.
func (p *Pipeline) Install(ctx context.Context, rec modinfo.Record) error {
	if rec.ExternallyManaged {
		return fmt.Errorf(messages.InstallRefusedFmt, ErrExternallyManaged, rec.Key)
	}
	if err := validateKey(rec.Key); err != nil {
		return err
	}
	id := rec.Identifier()
	if id == "" {
		return fmt.Errorf(messages.InstallRefusedFmt, modinfo.ErrNotInCatalog, rec.Key)
	}

	unlock := p.keys.lock(rec.Key)
	defer unlock()
	lockPath := filepath.Join(p.modsDir, WorkDirName, "locks", rec.Key+".lock")
	lock, err := acquireFileLock(p.sys, lockPath, p.lockTimeout)
	if err != nil {
		return phaseError(rec.Key, PhaseLock, err)
	}
	defer func() { _ = lock.release() }()

	tmp, err := p.sys.CreateTemp("", "modsync-"+rec.Key+"-*.zip")
	if err != nil {
		return phaseError(rec.Key, PhaseDownload, fmt.Errorf(messages.InstallCreateTempFileFmt, ErrFilesystem, err))
	}
	tmpName := tmp.Name()
	defer func() { _ = p.sys.Remove(tmpName) }()

	source := ExpandURL(p.urlTemplate, id)
	_, _ = fmt.Fprintf(p.progress, messages.InstallDownloadingFmt, rec.Key, source)
	if err := download(ctx, p.client, source, tmp, p.maxBytes); err != nil {
		_ = tmp.Close()
		return phaseError(rec.Key, PhaseDownload, err)
	}
	if err := tmp.Close(); err != nil {
		return phaseError(rec.Key, PhaseDownload, fmt.Errorf(messages.InstallCloseTempFileFmt, ErrFilesystem, err))
	}

	switch p.strategy {
	case StrategyReplace:
		err = p.replace(rec.Key, tmpName)
	default:
		err = p.staged(rec.Key, tmpName)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(p.progress, messages.InstallInstalledFmt, rec.Key)
	return nil
}

// replace deletes the installed directory, then extracts into the mods directory.
// A failed extraction leaves the mod uninstalled.
func (p *Pipeline) replace(key string, archive string) error {
	target := filepath.Join(p.modsDir, key)
	if err := p.sys.RemoveAll(target); err != nil {
		return phaseError(key, PhaseReplace, fmt.Errorf(messages.InstallRemoveDirFmt, ErrFilesystem, target, err))
	}
	if err := extractZip(p.sys, archive, p.modsDir); err != nil {
		return phaseError(key, PhaseExtract, err)
	}
	return nil
}

// staged extracts into a private staging directory, requires the archive to
// carry the mod's directory at its root, and swaps it into place with renames.
// The previous directory is restored when the swap fails.
func (p *Pipeline) staged(key string, archive string) error {
	stagingRoot := filepath.Join(p.modsDir, WorkDirName, "staging")
	stageDir := filepath.Join(stagingRoot, key+"-"+uuid.NewString())
	if err := p.sys.MkdirAll(stageDir, 0o755); err != nil {
		return phaseError(key, PhaseExtract, fmt.Errorf(messages.InstallCreateDirFmt, ErrFilesystem, stageDir, err))
	}
	defer func() { _ = p.sys.RemoveAll(stageDir) }()

	if err := extractZip(p.sys, archive, stageDir); err != nil {
		return phaseError(key, PhaseExtract, err)
	}
	extracted := filepath.Join(stageDir, key)
	info, err := p.sys.Stat(extracted)
	if err != nil || !info.IsDir() {
		return phaseError(key, PhaseExtract, fmt.Errorf(messages.InstallArchiveMissingRootFmt, ErrArchive, key))
	}

	target := filepath.Join(p.modsDir, key)
	backup := stageDir + ".old"
	hadPrevious := false
	if _, err := p.sys.Stat(target); err == nil {
		if err := p.sys.Rename(target, backup); err != nil {
			return phaseError(key, PhaseReplace, fmt.Errorf(messages.InstallRenameFmt, ErrFilesystem, target, backup, err))
		}
		hadPrevious = true
	} else if !os.IsNotExist(err) {
		return phaseError(key, PhaseReplace, fmt.Errorf(messages.InstallStatFmt, ErrFilesystem, target, err))
	}

	if err := p.sys.Rename(extracted, target); err != nil {
		if hadPrevious {
			if restoreErr := p.sys.Rename(backup, target); restoreErr != nil {
				err = errors.Join(err, restoreErr)
			}
		}
		return phaseError(key, PhaseReplace, fmt.Errorf(messages.InstallRenameFmt, ErrFilesystem, extracted, target, err))
	}
	if hadPrevious {
		if err := p.sys.RemoveAll(backup); err != nil {
			_, _ = fmt.Fprintf(p.progress, messages.InstallCleanupWarningFmt, backup, err)
		}
	}
	return nil
}

// validateKey rejects keys that are not a single visible directory name.
func validateKey(key string) error {
	if key == "" || key != filepath.Base(key) || !filepath.IsLocal(key) || strings.HasPrefix(key, ".") {
		return fmt.Errorf(messages.InstallInvalidKeyFmt, ErrFilesystem, key)
	}
	return nil
}

func phaseError(key string, phase Phase, err error) error {
	return fmt.Errorf(messages.InstallPhaseFailedFmt, key, phase, err)
}
