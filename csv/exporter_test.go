package csv_test

import (
	"context"
	stdcsv "encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataset() *pagex.Dataset {
	return &pagex.Dataset{Records: []*pagex.ParseRecord{
		{
			ID:                  "1.2",
			Status:              pagex.StatusSuccess,
			Title:               "Заголовок",
			Content:             "<h1>Заголовок</h1>\r\n\n<p>Текст, \"з\" комою</p>",
			SourceURL:           "https://example.com/a",
			ResponseDescription: "Response code: 200 - OK",
			ImagesOriginal:      []string{"https://example.com/1.png", "https://example.com/2.png"},
			ImagesRewritten:     []string{"https://example.com/1.png", "https://example.com/2.png"},
		},
	}}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := stdcsv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		paths, err := csv.NewExporter().Export(context.Background(), dataset(), dir)

		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(dir, csv.FileName)}, paths)
		rows := readCSV(t, paths[0])
		require.Len(t, rows, 2)
		assert.Equal(t, pagex.Columns, rows[0])
		assert.Equal(t, "1.2", rows[1][1])
		assert.Equal(t, "Заголовок", rows[1][2])
		assert.Equal(t, "<h1>Заголовок</h1>\n\n<p>Текст, \"з\" комою</p>", rows[1][3])
		assert.Equal(t, "https://example.com/1.png \nhttps://example.com/2.png", rows[1][6])
	})

	t.Run("cleaned mode collapses line breaks", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		paths, err := csv.NewExporter(csv.WithCleaned(true)).Export(context.Background(), dataset(), dir)

		require.NoError(t, err)
		rows := readCSV(t, paths[0])
		assert.Equal(t, "<h1>Заголовок</h1> <p>Текст, \"з\" комою</p>", rows[1][3])
		assert.Equal(t, "https://example.com/1.png  https://example.com/2.png", rows[1][6])
	})

	t.Run("reports no data for an empty dataset", func(t *testing.T) {
		t.Parallel()

		_, err := csv.NewExporter().Export(context.Background(), nil, t.TempDir())

		assert.Equal(t, pagex.ENOTFOUND, pagex.ErrorCode(err))
	})
}
