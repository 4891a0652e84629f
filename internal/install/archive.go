package install

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/modsync/internal/messages"
)

// extractZip unpacks the archive at src under dest. Entry paths that would
// land outside dest are rejected before anything is written for them.
// Archive problems wrap ErrArchive; failures to create files wrap ErrFilesystem.
func extractZip(sys System, src string, dest string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf(messages.InstallArchiveOpenFmt, ErrArchive, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		name, err := entryPath(file.Name)
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}
		target := filepath.Join(dest, name)
		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := sys.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.InstallCreateDirFmt, ErrFilesystem, target, err)
			}
		case mode.IsRegular():
			if err := extractFile(sys, file, target); err != nil {
				return err
			}
		default:
			// Symlinks and device entries have no meaning in a mod directory.
			continue
		}
	}
	return nil
}

// entryPath converts a zip entry name to a cleaned relative OS path.
func entryPath(name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	slashed = strings.TrimSuffix(slashed, "/")
	if slashed == "" || slashed == "." {
		return "", nil
	}
	local := filepath.FromSlash(slashed)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf(messages.InstallArchiveUnsafePathFmt, ErrArchive, name)
	}
	return filepath.Clean(local), nil
}

func extractFile(sys System, file *zip.File, target string) error {
	if err := sys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFmt, ErrFilesystem, filepath.Dir(target), err)
	}
	in, err := file.Open()
	if err != nil {
		return fmt.Errorf(messages.InstallArchiveReadEntryFmt, ErrArchive, file.Name, err)
	}
	defer func() { _ = in.Close() }()

	perm := file.Mode().Perm() | 0o600
	out, err := sys.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf(messages.InstallWriteFileFmt, ErrFilesystem, target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.InstallArchiveReadEntryFmt, ErrArchive, file.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.InstallWriteFileFmt, ErrFilesystem, target, err)
	}
	return nil
}
