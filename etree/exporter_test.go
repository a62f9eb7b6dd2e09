package etree_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, url, content string) *pagex.ParseRecord {
	return &pagex.ParseRecord{
		ID:        id,
		Status:    pagex.StatusSuccess,
		Title:     "T",
		Content:   content,
		SourceURL: url,
	}
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes a single xml file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ds := &pagex.Dataset{Records: []*pagex.ParseRecord{
			record("1.2", "https://example.com/a", "<h1>A</h1>"),
		}}

		paths, err := etree.NewExporter().Export(context.Background(), ds, dir)

		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(dir, "1.2_example-com-a.xml")}, paths)
		data, err := os.ReadFile(paths[0])
		require.NoError(t, err)
		assert.Equal(t, "<root><h1>A</h1></root>", string(data))
	})

	t.Run("bundles several records into one archive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ds := &pagex.Dataset{Records: []*pagex.ParseRecord{
			record("1.2", "https://example.com/a", "<h1>A</h1>"),
			record("1.3", "https://example.com/b", "<h1>B</h1>"),
		}}

		paths, err := etree.NewExporter().Export(context.Background(), ds, dir)

		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(dir, etree.ArchiveName+".zip")}, paths)

		zr, err := zip.OpenReader(paths[0])
		require.NoError(t, err)
		defer zr.Close()
		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"1.2_example-com-a.xml", "1.3_example-com-b.xml"}, names)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("reports no data for an empty dataset", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewExporter().Export(context.Background(), &pagex.Dataset{}, t.TempDir())

		assert.Equal(t, pagex.ENOTFOUND, pagex.ErrorCode(err))
		assert.Equal(t, pagex.NoDataMessage, pagex.ErrorMessage(err))
	})
}
