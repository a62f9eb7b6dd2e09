package pagex_test

import (
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]pagex.Format{
		"csv":         pagex.FormatCSV,
		"XLSX":        pagex.FormatXLSX,
		"spreadsheet": pagex.FormatXLSX,
		"xml":         pagex.FormatXML,
		"markdown":    pagex.FormatMarkdown,
	} {
		got, err := pagex.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := pagex.ParseFormat("pdf")
	assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(err))
}
