package fs_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+fs.ListExt), []byte(content), 0644))
}

func TestBlacklist_Contains(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeList(t, dir, "unreachable", "down.example.com\n# comment\n\n*.ads.example\n")
	writeList(t, dir, "rejected", "https://example.com/short\n.tracker.test")
	bl := fs.NewBlacklist(dir)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact host", "down.example.com", true},
		{"url on listed host", "https://down.example.com/page?id=1", true},
		{"host ignores case", "https://DOWN.example.com/", true},
		{"exact url", "https://example.com/short", true},
		{"other url on same host", "https://example.com/long", false},
		{"wildcard subdomain", "https://cdn.ads.example/x", true},
		{"wildcard apex", "ads.example", true},
		{"dot-prefixed suffix", "https://a.b.tracker.test/", true},
		{"suffix needs a label boundary", "https://notads.example/", false},
		{"comment line is not an entry", "# comment", false},
		{"unlisted", "https://example.org/", false},
		{"blank", "  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bl.Contains(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlacklist_MissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	bl := fs.NewBlacklist(filepath.Join(t.TempDir(), "nope"))

	got, err := bl.Contains(context.Background(), "https://example.com/")

	require.NoError(t, err)
	assert.False(t, got)
}

func TestBlacklist_Append(t *testing.T) {
	t.Parallel()

	t.Run("creates the list and makes the entry visible", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "blacklist")
		bl := fs.NewBlacklist(dir)
		ctx := context.Background()

		require.NoError(t, bl.Append(ctx, pagex.ListUnreachable, "Down.Example.com"))

		got, err := bl.Contains(ctx, "https://down.example.com/a")
		require.NoError(t, err)
		assert.True(t, got)

		data, err := os.ReadFile(filepath.Join(dir, "unreachable.txt"))
		require.NoError(t, err)
		assert.Equal(t, "down.example.com\n", string(data))
	})

	t.Run("skips entries already present", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeList(t, dir, "rejected", "https://example.com/a")
		bl := fs.NewBlacklist(dir)
		ctx := context.Background()

		require.NoError(t, bl.Append(ctx, pagex.ListRejected, "https://example.com/a"))
		require.NoError(t, bl.Append(ctx, pagex.ListRejected, "https://example.com/b"))
		require.NoError(t, bl.Append(ctx, pagex.ListRejected, "https://example.com/b"))

		data, err := os.ReadFile(filepath.Join(dir, "rejected.txt"))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a\nhttps://example.com/b\n", string(data))
	})

	t.Run("sees entries written after load", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		bl := fs.NewBlacklist(dir)
		ctx := context.Background()
		_, err := bl.Contains(ctx, "warmup.example")
		require.NoError(t, err)

		writeList(t, dir, "unreachable", "late.example\n")
		require.NoError(t, bl.Append(ctx, pagex.ListUnreachable, "late.example"))

		data, err := os.ReadFile(filepath.Join(dir, "unreachable.txt"))
		require.NoError(t, err)
		assert.Equal(t, "late.example\n", string(data))
	})

	t.Run("rejects invalid list names", func(t *testing.T) {
		t.Parallel()

		bl := fs.NewBlacklist(t.TempDir())

		err := bl.Append(context.Background(), "../escape", "example.com")

		assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(err))
	})

	t.Run("rejects blank entries", func(t *testing.T) {
		t.Parallel()

		bl := fs.NewBlacklist(t.TempDir())

		err := bl.Append(context.Background(), pagex.ListRejected, " ")

		assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(err))
	})

	t.Run("concurrent appends write each entry once", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		bl := fs.NewBlacklist(dir)
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, bl.Append(ctx, pagex.ListUnreachable, fmt.Sprintf("host-%d.example", i%5)))
			}()
		}
		wg.Wait()

		data, err := os.ReadFile(filepath.Join(dir, "unreachable.txt"))
		require.NoError(t, err)
		for i := range 5 {
			assert.Equal(t, 1, countLines(string(data), fmt.Sprintf("host-%d.example", i)))
		}
	})
}
