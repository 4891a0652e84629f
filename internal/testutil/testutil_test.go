package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestJSONIsValid(t *testing.T) {
	for _, content := range []string{ManifestJSON("A", "ida", "3"), ManifestJSON("B", "", "")} {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(content), &decoded); err != nil {
			t.Fatalf("manifest %s: %v", content, err)
		}
	}
}

func TestWriteModAndMarker(t *testing.T) {
	mods := t.TempDir()
	dir := WriteMod(t, mods, "modA", "", `{"name":"A"}`)
	if got := ReadFile(t, filepath.Join(dir, "mod.txt")); got != `{"name":"A"}` {
		t.Fatalf("unexpected manifest %q", got)
	}
	WriteMarker(t, mods, "modA", ".git")
	info, err := os.Stat(filepath.Join(mods, "modA", ".git"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected marker directory, err=%v", err)
	}
}

func TestModArchiveLayout(t *testing.T) {
	data := ModArchive(t, "modA", "{}", map[string]string{"lua/main.lua": "print()"})
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	want := []string{"modA/", "modA/lua/main.lua", "modA/mod.txt"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestBoolPtr(t *testing.T) {
	ptr := BoolPtr(true)
	if ptr == nil || !*ptr {
		t.Fatal("expected pointer to true")
	}
}

func TestWithWorkingDirRestoresOriginal(t *testing.T) {
	targetDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd before test: %v", err)
	}
	var observedDir string
	WithWorkingDir(t, targetDir, func() {
		observedDir, _ = os.Getwd()
	})
	targetReal, _ := filepath.EvalSymlinks(targetDir)
	observedReal, _ := filepath.EvalSymlinks(observedDir)
	if observedReal != targetReal {
		t.Fatalf("expected callback cwd %q, got %q", targetReal, observedReal)
	}
	finalDir, _ := os.Getwd()
	if finalDir != origDir {
		t.Fatalf("expected cwd restored to %q, got %q", origDir, finalDir)
	}
}
