// Package fs provides file-based storage for blacklists and export bundles.
package fs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/bloom"
)

// ListExt is the file extension of blacklist files.
const ListExt = ".txt"

// Ensure Blacklist implements pagex.Blacklist at compile time.
var _ pagex.Blacklist = (*Blacklist)(nil)

var listNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Blacklist implements pagex.Blacklist over a directory of list files,
// one entry per line. An entry is a host (example.com), a wildcard host
// (*.example.com or .example.com) or a full URL. Matching ignores case.
//
// Lists are loaded lazily on first use. Lines added by Append are visible
// to Contains immediately; lines written by other processes are seen by
// Append but not by Contains until the next Blacklist is created.
type Blacklist struct {
	dir string

	mu       sync.Mutex
	loaded   bool
	filter   *bloom.Filter
	exact    map[string]struct{}
	suffixes []string
}

// NewBlacklist creates a Blacklist backed by dir. The directory is created
// on the first Append.
func NewBlacklist(dir string) *Blacklist {
	return &Blacklist{dir: dir}
}

// Contains reports whether urlOrDomain, or its host, matches any entry in
// any list.
func (b *Blacklist) Contains(ctx context.Context, urlOrDomain string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key := normalizeEntry(urlOrDomain)
	if key == "" {
		return false, nil
	}
	host := pagex.Host(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(); err != nil {
		return false, err
	}

	for _, candidate := range []string{key, host} {
		if candidate == "" || !b.filter.MayContain(candidate) {
			continue
		}
		if _, ok := b.exact[candidate]; ok {
			return true, nil
		}
	}
	for _, suffix := range b.suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true, nil
		}
	}
	return false, nil
}

// Append adds entry to the named list unless the list already holds it.
// The check and the write happen under one lock.
func (b *Blacklist) Append(ctx context.Context, list, entry string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !listNameRe.MatchString(list) {
		return pagex.Errorf(pagex.EINVALID, "invalid blacklist name %q", list)
	}
	key := normalizeEntry(entry)
	if key == "" {
		return pagex.Errorf(pagex.EINVALID, "blacklist entry required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.load(); err != nil {
		return err
	}

	path := filepath.Join(b.dir, list+ListExt)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read blacklist %s: %w", list, err)
	}
	for _, line := range splitLines(existing) {
		if line == key {
			return nil
		}
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("create blacklist dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open blacklist %s: %w", list, err)
	}
	line := key + "\n"
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append blacklist %s: %w", list, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close blacklist %s: %w", list, err)
	}

	b.add(key)
	return nil
}

// load reads every list file in dir. Callers must hold b.mu.
func (b *Blacklist) load() error {
	if b.loaded {
		return nil
	}

	var entries []string
	paths, err := filepath.Glob(filepath.Join(b.dir, "*"+ListExt))
	if err != nil {
		return fmt.Errorf("list blacklists: %w", err)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read blacklist %s: %w", filepath.Base(path), err)
		}
		entries = append(entries, splitLines(data)...)
	}

	b.filter = bloom.NewFilter(uint(max(2*len(entries), 1024)), 0.01)
	b.exact = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		b.add(e)
	}
	b.loaded = true
	return nil
}

// add indexes a normalized entry. Callers must hold b.mu.
func (b *Blacklist) add(entry string) {
	var suffix string
	switch {
	case strings.HasPrefix(entry, "*."):
		suffix = strings.TrimPrefix(entry, "*.")
	case strings.HasPrefix(entry, "."):
		suffix = strings.TrimPrefix(entry, ".")
	default:
		b.exact[entry] = struct{}{}
		b.filter.Add(entry)
		return
	}
	if suffix == "" {
		return
	}
	for _, existing := range b.suffixes {
		if existing == suffix {
			return
		}
	}
	b.suffixes = append(b.suffixes, suffix)
}

// splitLines returns the normalized non-blank, non-comment lines of data.
func splitLines(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := normalizeEntry(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func normalizeEntry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
