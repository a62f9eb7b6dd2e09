package fs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagex"
)

// CreateArchive bundles files into a ZIP archive at zipPath. Entries are
// named by the files' base names. Every file is checked before the archive
// is created, so a missing file leaves nothing behind.
func CreateArchive(files []string, zipPath string) (err error) {
	for _, file := range files {
		info, statErr := os.Stat(file)
		if errors.Is(statErr, os.ErrNotExist) || (statErr == nil && info.IsDir()) {
			return pagex.Errorf(pagex.ENOTFOUND, "file %s not found", file)
		}
		if statErr != nil {
			return fmt.Errorf("stat %s: %w", file, statErr)
		}
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(zipPath)
		}
	}()

	zw := zip.NewWriter(out)
	for _, file := range files {
		if err := addFile(zw, file); err != nil {
			_ = zw.Close()
			_ = out.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, file string) error {
	in, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   filepath.Base(file),
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("add %s: %w", file, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}
