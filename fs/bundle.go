package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Bundle stages per-record export files in a temporary directory and
// publishes them into dir on Commit: a single file is moved into place,
// several files are zipped into one archive.
type Bundle struct {
	dir   string
	name  string
	files []string
}

// NewBundle creates a Bundle publishing into dir. name identifies the
// staging directory and, with ".zip", the archive.
func NewBundle(dir, name string) *Bundle {
	return &Bundle{
		dir:  dir,
		name: name,
	}
}

func (b *Bundle) tempDir() string {
	return filepath.Join(b.dir, "."+b.name+".tmp")
}

// Save writes one staged file.
func (b *Bundle) Save(filename string, data []byte) error {
	if err := os.MkdirAll(b.tempDir(), 0755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	path := filepath.Join(b.tempDir(), filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	b.files = append(b.files, path)
	return nil
}

// Commit publishes the staged files and removes the staging directory.
// It returns the published path, or nothing when no file was staged.
func (b *Bundle) Commit() ([]string, error) {
	defer func() {
		_ = os.RemoveAll(b.tempDir())
	}()

	switch len(b.files) {
	case 0:
		return nil, nil
	case 1:
		final := filepath.Join(b.dir, filepath.Base(b.files[0]))
		if err := os.Rename(b.files[0], final); err != nil {
			return nil, fmt.Errorf("publish %s: %w", filepath.Base(final), err)
		}
		return []string{final}, nil
	default:
		zipPath := filepath.Join(b.dir, b.name+".zip")
		if err := CreateArchive(b.files, zipPath); err != nil {
			return nil, err
		}
		return []string{zipPath}, nil
	}
}

// Abort discards the staged files.
func (b *Bundle) Abort() error {
	b.files = nil
	return os.RemoveAll(b.tempDir())
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLen = 80

// RecordFileName returns a file name for one exported record.
// Example: 1.2, https://example.com/docs/api → 1.2_example-com-docs-api.xml
func RecordFileName(id, rawURL, ext string) string {
	slug := ""
	if u, err := url.Parse(rawURL); err == nil {
		slug = u.Host + "/" + strings.Trim(u.Path, "/")
	}
	slug = strings.Trim(slugRe.ReplaceAllString(strings.ToLower(slug), "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		slug = "page"
	}
	return id + "_" + slug + "." + strings.TrimPrefix(ext, ".")
}
