package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/goquery"
	"github.com/fwojciec/pagex/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewCleaner().Clean("")

		assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(err))
	})

	t.Run("extracts main content without boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Documentation</h1>
<p>This is important documentation content that should be extracted by the cleaner.</p>
<p>A second paragraph adds enough text for the extraction heuristics to be confident.</p>
</article>
<footer>Copyright 2024</footer>
</body>
</html>`

		content, err := trafilatura.NewCleaner().Clean(html)

		require.NoError(t, err)
		assert.Contains(t, content, "important documentation content")
		assert.NotContains(t, content, "Copyright 2024")
	})

	t.Run("plugs into the merge extractor", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<article>
<h1>Heading</h1>
<p>This is important documentation content that should be extracted by the cleaner.</p>
<div><img src="/figure.png"></div>
</article>
</body>
</html>`

		ext := goquery.NewMergeExtractor(trafilatura.NewCleaner())
		result, err := ext.Extract(html, nil)

		require.NoError(t, err)
		assert.Equal(t, "Heading", result.Title)
		assert.Contains(t, result.ContentHTML, "<h1>Heading</h1>")
		assert.Contains(t, result.ContentHTML, "/figure.png")
	})
}
