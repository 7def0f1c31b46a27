// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive moves consumed scan inputs into a stamped archive
// directory so the working directory is clean for the next scanner run.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrDestinationExists is returned when the stamped archive name is already
// taken. The input is left in place rather than overwritten.
var ErrDestinationExists = errors.New("archive destination already exists")

// Archiver moves input files into Dir under stamped names.
type Archiver struct {
	// Dir is the archive directory, created on first use.
	Dir string
}

// New returns an Archiver rooted at dir.
func New(dir string) *Archiver {
	return &Archiver{Dir: dir}
}

// Store moves the file at path into the archive directory, inserting the
// stamp before the extension: scan.pdf becomes scan_20260103_143055.pdf.
// The directory is created if missing, and an occupied destination is
// refused. Store returns the archived path.
func (a *Archiver) Store(path, stamp string) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}
	dest := filepath.Join(a.Dir, stampedName(filepath.Base(path), stamp))
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("%w: %s", ErrDestinationExists, dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", dest, err)
	}
	if err := move(path, dest); err != nil {
		return "", fmt.Errorf("archiving %s: %w", path, err)
	}
	return dest, nil
}

// stampedName inserts the stamp between the base name and the extension.
func stampedName(base, stamp string) string {
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s_%s%s", strings.TrimSuffix(base, ext), stamp, ext)
}

// move renames src to dest. Rename cannot cross filesystems, so on failure
// it falls back to copy and remove, the way mv does.
func move(src, dest string) error {
	if os.Rename(src, dest) == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(dest)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(dest)
		return closeErr
	}
	return nil
}
