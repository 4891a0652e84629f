// Package manager runs refresh and update cycles over the mods directory.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/conn-castle/modsync/internal/catalog"
	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
	"github.com/conn-castle/modsync/internal/resolve"
	"github.com/conn-castle/modsync/internal/updateset"
)

var (
	// ErrModNotFound reports a mod key absent from the current snapshot.
	ErrModNotFound = errors.New("mod not found")
	// ErrNotInCatalog reports an update request for a mod the catalog does not track.
	ErrNotInCatalog = modinfo.ErrNotInCatalog
)

// UpdatePasses is the fixed number of install-then-refresh passes UpdateAll runs.
// A second pass picks up mods that only appear after the first pass installs them.
const UpdatePasses = 2

// Installer replaces one mod's directory with the catalog's latest archive.
type Installer interface {
	Install(ctx context.Context, rec modinfo.Record) error
}

// Options configures a Manager.
type Options struct {
	ModsDir        string
	ManifestName   string
	ExternalMarker string
	Catalog        catalog.Client
	Installer      Installer
	// WarnWriter receives one line per skipped manifest; nil discards.
	WarnWriter io.Writer
	Now        func() time.Time
}

// Manager owns the current snapshot. Operations are serialised: a refresh or
// update never runs concurrently with another on the same Manager.
type Manager struct {
	opts     Options
	mu       sync.Mutex
	snapshot *modinfo.Snapshot
	warned   map[string]string
}

// Report is the outcome of UpdateAll.
type Report struct {
	// Passes lists the mod keys installed in each pass.
	Passes [][]string
	// Records is the final snapshot's records.
	Records []modinfo.Record
}

// Installed returns every installed key across passes in order.
func (r Report) Installed() []string {
	var out []string
	for _, pass := range r.Passes {
		out = append(out, pass...)
	}
	return out
}

// New validates opts and returns a Manager.
func New(opts Options) (*Manager, error) {
	if strings.TrimSpace(opts.ModsDir) == "" {
		return nil, errors.New(messages.ManagerModsDirRequired)
	}
	if opts.Catalog == nil {
		return nil, errors.New(messages.ManagerCatalogRequired)
	}
	if opts.ManifestName == "" {
		opts.ManifestName = DefaultManifestName
	}
	if opts.ExternalMarker == "" {
		opts.ExternalMarker = DefaultExternalMarker
	}
	if opts.WarnWriter == nil {
		opts.WarnWriter = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{opts: opts, warned: make(map[string]string)}, nil
}

// Snapshot returns the last snapshot and whether a refresh has completed.
func (m *Manager) Snapshot() (modinfo.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return modinfo.Snapshot{}, false
	}
	return *m.snapshot, true
}

// Refresh rescans the mods directory, queries the catalog once and replaces the snapshot.
// When the catalog fails the previous snapshot is kept and returned with the error.
func (m *Manager) Refresh(ctx context.Context) (modinfo.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

func (m *Manager) refreshLocked(ctx context.Context) (modinfo.Snapshot, error) {
	scanned, err := Scan(m.opts.ModsDir, m.opts.ManifestName, m.opts.ExternalMarker)
	if err != nil {
		return m.previous(), err
	}
	m.warnSkipped(scanned.Skipped)

	set := updateset.Build(scanned.Records)
	entries, err := m.opts.Catalog.Query(ctx, set.Identifiers())
	if err != nil {
		if !errors.Is(err, catalog.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
		}
		return m.previous(), err
	}

	records := make([]modinfo.Record, len(scanned.Records))
	for i, rec := range scanned.Records {
		records[i] = resolve.Apply(rec, entries)
	}
	snap := modinfo.Snapshot{Records: records, Skipped: scanned.Skipped, RefreshedAt: m.opts.Now()}
	m.snapshot = &snap
	return snap, nil
}

// UpdateOne installs the mod with the given key, then refreshes and returns its new record.
// Mods in UpToDate state are reinstalled.
func (m *Manager) UpdateOne(ctx context.Context, key string) (modinfo.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		if _, err := m.refreshLocked(ctx); err != nil {
			return modinfo.Record{}, err
		}
	}
	rec, ok := m.snapshot.Find(key)
	if !ok {
		return modinfo.Record{}, fmt.Errorf(messages.ManagerModNotFoundFmt, ErrModNotFound, key)
	}
	if err := m.installLocked(ctx, rec); err != nil {
		return rec, err
	}

	snap, err := m.refreshLocked(ctx)
	if err != nil {
		return rec, err
	}
	updated, ok := snap.Find(key)
	if !ok {
		return rec, fmt.Errorf(messages.ManagerModMissingAfterInstallFmt, ErrModNotFound, key)
	}
	return updated, nil
}

// UpdateAll runs UpdatePasses passes of installing every UpdateAvailable mod
// followed by a refresh. The first install error aborts the batch.
func (m *Manager) UpdateAll(ctx context.Context) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var report Report
	if m.snapshot == nil {
		if _, err := m.refreshLocked(ctx); err != nil {
			return report, err
		}
	}
	for pass := 0; pass < UpdatePasses; pass++ {
		var installed []string
		for _, rec := range m.snapshot.Pending() {
			if err := m.installLocked(ctx, rec); err != nil {
				report.Passes = append(report.Passes, installed)
				report.Records = m.snapshot.Records
				return report, err
			}
			installed = append(installed, rec.Key)
		}
		report.Passes = append(report.Passes, installed)
		snap, err := m.refreshLocked(ctx)
		report.Records = snap.Records
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (m *Manager) installLocked(ctx context.Context, rec modinfo.Record) error {
	switch {
	case rec.ExternallyManaged:
		return fmt.Errorf(messages.ManagerRefuseFmt, modinfo.ErrExternallyManaged, rec.Key)
	case !rec.Installable():
		return fmt.Errorf(messages.ManagerRefuseFmt, ErrNotInCatalog, rec.Key)
	case m.opts.Installer == nil:
		return errors.New(messages.ManagerInstallerRequired)
	}
	return m.opts.Installer.Install(ctx, rec)
}

func (m *Manager) previous() modinfo.Snapshot {
	if m.snapshot == nil {
		return modinfo.Snapshot{}
	}
	return *m.snapshot
}

// warnSkipped writes each skipped mod once per distinct error.
func (m *Manager) warnSkipped(skipped []modinfo.Skipped) {
	for _, s := range skipped {
		msg := s.Err.Error()
		if m.warned[s.Key] == msg {
			continue
		}
		m.warned[s.Key] = msg
		_, _ = fmt.Fprintf(m.opts.WarnWriter, messages.ManagerSkippedManifestFmt, s.Key, msg)
	}
}
