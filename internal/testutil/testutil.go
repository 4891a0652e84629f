// Package testutil holds fixtures shared by package tests: mod directories and zip archives.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// ManifestJSON returns a minimal manifest whose primary update entry has the given identifier and revision.
// An empty id yields a manifest without updates.
func ManifestJSON(name string, id string, rev string) string {
	if id == "" {
		return fmt.Sprintf(`{"name": %q}`, name)
	}
	return fmt.Sprintf(`{"name": %q, "updates": [{"identifier": %q, "revision": %q}]}`, name, id, rev)
}

// WriteMod creates modsDir/key with a manifest file holding content and returns the mod directory.
// t is the active test; manifestName defaults to mod.txt when empty.
func WriteMod(t *testing.T, modsDir string, key string, manifestName string, content string) string {
	t.Helper()
	if manifestName == "" {
		manifestName = "mod.txt"
	}
	dir := filepath.Join(modsDir, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir mod: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return dir
}

// WriteMarker creates the marker directory (for example .git) inside modsDir/key.
func WriteMarker(t *testing.T, modsDir string, key string, marker string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(modsDir, key, marker), 0o755); err != nil {
		t.Fatalf("mkdir marker: %v", err)
	}
}

// ZipBytes builds a zip archive in memory. Names ending in "/" become directory entries.
// Entries are written in sorted name order.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			if _, err := writer.Create(name); err != nil {
				t.Fatalf("zip dir %s: %v", name, err)
			}
			continue
		}
		w, err := writer.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// ModArchive returns a zip holding key/ with the manifest content as mod.txt plus any extra files,
// given relative to the mod directory.
func ModArchive(t *testing.T, key string, manifest string, extra map[string]string) []byte {
	t.Helper()
	files := map[string]string{
		key + "/":        "",
		key + "/mod.txt": manifest,
	}
	for name, content := range extra {
		files[key+"/"+name] = content
	}
	return ZipBytes(t, files)
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// BoolPtr returns a pointer to v.
// v is the boolean value to take the address of.
func BoolPtr(v bool) *bool {
	return &v
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
