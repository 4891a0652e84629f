package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/modsync/internal/manifest"
	"github.com/conn-castle/modsync/internal/messages"
	"github.com/conn-castle/modsync/internal/modinfo"
)

const (
	// DefaultManifestName is the per-mod manifest file.
	DefaultManifestName = "mod.txt"
	// DefaultExternalMarker is the sub-directory that marks a mod as managed out of band.
	DefaultExternalMarker = ".git"
)

// ScanResult is the local half of a refresh: every parsed mod and every mod left out.
type ScanResult struct {
	Records []modinfo.Record
	Skipped []modinfo.Skipped
}

// Scan reads every mod directory under modsDir in name order. Hidden directories
// and directories without a manifest are not mods. A manifest that cannot be
// parsed is reported in Skipped and never aborts the scan.
func Scan(modsDir string, manifestName string, marker string) (ScanResult, error) {
	if manifestName == "" {
		manifestName = DefaultManifestName
	}
	if marker == "" {
		marker = DefaultExternalMarker
	}
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		return ScanResult{}, fmt.Errorf(messages.ManagerReadModsDirFmt, modsDir, err)
	}

	var result ScanResult
	for _, entry := range entries {
		key := entry.Name()
		if strings.HasPrefix(key, ".") {
			continue
		}
		dir := filepath.Join(modsDir, key)
		if !isDir(dir) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, manifestName))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			result.Skipped = append(result.Skipped, modinfo.Skipped{Key: key, Err: err})
			continue
		}
		parsed, repaired, err := manifest.Parse(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, modinfo.Skipped{Key: key, Err: err})
			continue
		}
		result.Records = append(result.Records, modinfo.Record{
			Key:               key,
			Manifest:          parsed,
			RepairApplied:     repaired,
			ExternallyManaged: isDir(filepath.Join(dir, marker)),
			State:             modinfo.LocalOnly,
		})
	}
	return result, nil
}

// isDir follows symlinks so linked mod directories are scanned too.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
