package install

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/modsync/internal/jsonval"
	"github.com/conn-castle/modsync/internal/manifest"
	"github.com/conn-castle/modsync/internal/modinfo"
	"github.com/conn-castle/modsync/internal/testutil"
)

// recordingSystem places temp files in a known directory and can fail selected renames.
type recordingSystem struct {
	RealSystem
	tempDir    string
	temps      []string
	failRename func(oldpath string, newpath string) error
}

func (s *recordingSystem) CreateTemp(_ string, pattern string) (*os.File, error) {
	f, err := os.CreateTemp(s.tempDir, pattern)
	if err == nil {
		s.temps = append(s.temps, f.Name())
	}
	return f, err
}

func (s *recordingSystem) Rename(oldpath string, newpath string) error {
	if s.failRename != nil {
		if err := s.failRename(oldpath, newpath); err != nil {
			return err
		}
	}
	return os.Rename(oldpath, newpath)
}

func (s *recordingSystem) assertTempsRemoved(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.temps, "expected a temp file to have been created")
	for _, name := range s.temps {
		_, err := os.Stat(name)
		assert.True(t, os.IsNotExist(err), "temp file %s still exists", name)
	}
}

func modRecord(key string, id string) modinfo.Record {
	rec := modinfo.Record{Key: key, State: modinfo.UpdateAvailable}
	rec.Manifest.Updates = []manifest.Ref{{Identifier: jsonval.String(id), Revision: "1"}}
	return rec
}

func serveBytes(t *testing.T, body []byte) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newPipeline(t *testing.T, modsDir string, serverURL string, strategy Strategy) (*Pipeline, *recordingSystem) {
	t.Helper()
	sys := &recordingSystem{tempDir: t.TempDir()}
	p, err := New(Options{
		ModsDir:     modsDir,
		URLTemplate: serverURL + "/download/latest/{identifier}",
		Strategy:    strategy,
		System:      sys,
	})
	require.NoError(t, err)
	return p, sys
}

func TestInstall_StagedReplacesDirectory(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", testutil.ManifestJSON("A", "ida", "1"))
	require.NoError(t, os.WriteFile(filepath.Join(mods, "modA", "stale.lua"), []byte("old"), 0o644))

	var path string
	archive := testutil.ModArchive(t, "modA", testutil.ManifestJSON("A", "ida", "2"), map[string]string{"lua/main.lua": "new"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)

	p, sys := newPipeline(t, mods, server.URL, StrategyStaged)
	require.NoError(t, p.Install(context.Background(), modRecord("modA", "ida")))

	assert.Equal(t, "/download/latest/ida", path)
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(mods, "modA", "mod.txt")), `"2"`)
	assert.Equal(t, "new", testutil.ReadFile(t, filepath.Join(mods, "modA", "lua", "main.lua")))
	_, err := os.Stat(filepath.Join(mods, "modA", "stale.lua"))
	assert.True(t, os.IsNotExist(err))

	staging, err := os.ReadDir(filepath.Join(mods, WorkDirName, "staging"))
	require.NoError(t, err)
	assert.Empty(t, staging)
	sys.assertTempsRemoved(t)
}

func TestInstall_StagedFreshInstall(t *testing.T) {
	mods := t.TempDir()
	server, _ := serveBytes(t, testutil.ModArchive(t, "modN", "{}", nil))
	p, _ := newPipeline(t, mods, server.URL, StrategyStaged)

	require.NoError(t, p.Install(context.Background(), modRecord("modN", "idn")))
	assert.Equal(t, "{}", testutil.ReadFile(t, filepath.Join(mods, "modN", "mod.txt")))
}

func TestInstall_StagedCorruptArchiveKeepsInstalledMod(t *testing.T) {
	mods := t.TempDir()
	original := testutil.ManifestJSON("A", "ida", "1")
	testutil.WriteMod(t, mods, "modA", "", original)
	server, _ := serveBytes(t, []byte("this is not a zip"))

	p, sys := newPipeline(t, mods, server.URL, StrategyStaged)
	err := p.Install(context.Background(), modRecord("modA", "ida"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArchive)
	assert.Contains(t, err.Error(), "modA")
	assert.Contains(t, err.Error(), string(PhaseExtract))

	assert.Equal(t, original, testutil.ReadFile(t, filepath.Join(mods, "modA", "mod.txt")))
	sys.assertTempsRemoved(t)
}

func TestInstall_StagedRequiresModRootDirectory(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", "{}")
	server, _ := serveBytes(t, testutil.ModArchive(t, "other", "{}", nil))

	p, _ := newPipeline(t, mods, server.URL, StrategyStaged)
	err := p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrArchive)
	assert.Equal(t, "{}", testutil.ReadFile(t, filepath.Join(mods, "modA", "mod.txt")))
	_, statErr := os.Stat(filepath.Join(mods, "other"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstall_StagedRenameFailureRestoresPrevious(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", "old")
	server, _ := serveBytes(t, testutil.ModArchive(t, "modA", "new", nil))

	p, sys := newPipeline(t, mods, server.URL, StrategyStaged)
	target := filepath.Join(mods, "modA")
	sys.failRename = func(oldpath string, newpath string) error {
		if newpath == target && strings.Contains(oldpath, filepath.Join(WorkDirName, "staging")) && !strings.HasSuffix(oldpath, ".old") {
			return errors.New("rename blocked")
		}
		return nil
	}

	err := p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrFilesystem)
	assert.Contains(t, err.Error(), string(PhaseReplace))
	assert.Equal(t, "old", testutil.ReadFile(t, filepath.Join(target, "mod.txt")))
}

func TestInstall_ReplaceExtractsIntoModsDir(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", "old")
	require.NoError(t, os.WriteFile(filepath.Join(mods, "modA", "stale.lua"), []byte("old"), 0o644))
	server, _ := serveBytes(t, testutil.ModArchive(t, "modA", "new", nil))

	p, sys := newPipeline(t, mods, server.URL, StrategyReplace)
	require.NoError(t, p.Install(context.Background(), modRecord("modA", "ida")))
	assert.Equal(t, "new", testutil.ReadFile(t, filepath.Join(mods, "modA", "mod.txt")))
	_, err := os.Stat(filepath.Join(mods, "modA", "stale.lua"))
	assert.True(t, os.IsNotExist(err))
	sys.assertTempsRemoved(t)
}

func TestInstall_ReplaceCorruptArchiveLeavesModRemoved(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", "old")
	server, _ := serveBytes(t, []byte("corrupt"))

	p, sys := newPipeline(t, mods, server.URL, StrategyReplace)
	err := p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrArchive)

	_, statErr := os.Stat(filepath.Join(mods, "modA"))
	assert.True(t, os.IsNotExist(statErr))
	sys.assertTempsRemoved(t)
}

func TestInstall_RejectsPathEscapingArchive(t *testing.T) {
	mods := filepath.Join(t.TempDir(), "mods")
	require.NoError(t, os.MkdirAll(mods, 0o755))
	server, _ := serveBytes(t, testutil.ZipBytes(t, map[string]string{"../escaped.txt": "x"}))

	for _, strategy := range []Strategy{StrategyStaged, StrategyReplace} {
		t.Run(string(strategy), func(t *testing.T) {
			p, _ := newPipeline(t, mods, server.URL, strategy)
			err := p.Install(context.Background(), modRecord("modA", "ida"))
			require.ErrorIs(t, err, ErrArchive)
			_, statErr := os.Stat(filepath.Join(filepath.Dir(mods), "escaped.txt"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestInstall_NotFoundRemovesTempAndKeepsMod(t *testing.T) {
	mods := t.TempDir()
	testutil.WriteMod(t, mods, "modA", "", "old")
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	p, sys := newPipeline(t, mods, server.URL, StrategyReplace)
	err := p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), string(PhaseDownload))
	assert.Equal(t, "old", testutil.ReadFile(t, filepath.Join(mods, "modA", "mod.txt")))
	sys.assertTempsRemoved(t)
}

func TestInstall_RetriesServerErrorOnce(t *testing.T) {
	orig := downloadSleep
	downloadSleep = func(context.Context, time.Duration) error { return nil }
	t.Cleanup(func() { downloadSleep = orig })

	mods := t.TempDir()
	archive := testutil.ModArchive(t, "modA", "new", nil)
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)

	p, _ := newPipeline(t, mods, server.URL, StrategyStaged)
	require.NoError(t, p.Install(context.Background(), modRecord("modA", "ida")))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInstall_DownloadTooLarge(t *testing.T) {
	mods := t.TempDir()
	server, _ := serveBytes(t, testutil.ModArchive(t, "modA", strings.Repeat("x", 4096), nil))
	sys := &recordingSystem{tempDir: t.TempDir()}
	p, err := New(Options{ModsDir: mods, URLTemplate: server.URL + "/", MaxBytes: 64, System: sys})
	require.NoError(t, err)

	err = p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, err.Error(), "64")
	sys.assertTempsRemoved(t)
}

func TestInstall_RefusesExternallyManagedAndUntrackedMods(t *testing.T) {
	server, calls := serveBytes(t, nil)
	p, _ := newPipeline(t, t.TempDir(), server.URL, StrategyStaged)

	ext := modRecord("modC", "idc")
	ext.ExternallyManaged = true
	err := p.Install(context.Background(), ext)
	assert.ErrorIs(t, err, ErrExternallyManaged)

	untracked := modinfo.Record{Key: "local"}
	err = p.Install(context.Background(), untracked)
	assert.ErrorIs(t, err, modinfo.ErrNotInCatalog)

	for _, key := range []string{"", ".modsync", "../x", "a/b"} {
		err = p.Install(context.Background(), modRecord(key, "id"))
		assert.ErrorIs(t, err, ErrFilesystem, "key %q", key)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestInstall_LockTimeout(t *testing.T) {
	origSleep := lockSleep
	lockSleep = func(time.Duration) {}
	t.Cleanup(func() { lockSleep = origSleep })

	mods := t.TempDir()
	held, err := acquireFileLock(RealSystem{}, filepath.Join(mods, WorkDirName, "locks", "modA.lock"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = held.release() })

	server, calls := serveBytes(t, nil)
	p, err := New(Options{ModsDir: mods, URLTemplate: server.URL + "/", LockTimeout: time.Nanosecond})
	require.NoError(t, err)

	err = p.Install(context.Background(), modRecord("modA", "ida"))
	require.ErrorIs(t, err, ErrFilesystem)
	assert.Contains(t, err.Error(), string(PhaseLock))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestExpandURL(t *testing.T) {
	assert.Equal(t, "http://x/latest/a%20b", ExpandURL("http://x/latest/{identifier}", "a b"))
	assert.Equal(t, "http://x/latest/id", ExpandURL("http://x/latest/", "id"))
	assert.Equal(t, "http://x/?id=id&again=id", ExpandURL("http://x/?id={identifier}&again={identifier}", "id"))
}

func TestParseStrategy(t *testing.T) {
	got, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyStaged, got)
	got, err = ParseStrategy(" Replace ")
	require.NoError(t, err)
	assert.Equal(t, StrategyReplace, got)
	_, err = ParseStrategy("swap")
	assert.Error(t, err)
}

func TestNew_RequiresModsDir(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
