package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagex"
	"golang.org/x/net/html"
)

// Ensure MergeExtractor implements pagex.Extractor at compile time.
var _ pagex.Extractor = (*MergeExtractor)(nil)

// imageContainers are the parent tags whose images are carried over from
// the original page.
var imageContainers = map[string]bool{
	"p":       true,
	"div":     true,
	"article": true,
	"section": true,
	"figure":  true,
	"header":  true,
	"aside":   true,
}

// wrapperTags are descended into when they hold no text of their own, so
// that each content block of the cleaned article is emitted exactly once.
var wrapperTags = map[string]bool{
	"html":    true,
	"body":    true,
	"main":    true,
	"div":     true,
	"article": true,
	"section": true,
}

// MergeExtractor runs a boilerplate Cleaner over the whole page, keeps the
// cleaned blocks up to the first one mentioning an ignore word, and then
// appends the images of the original page.
type MergeExtractor struct {
	cleaner pagex.Cleaner
}

// NewMergeExtractor creates a new MergeExtractor backed by cleaner.
func NewMergeExtractor(cleaner pagex.Cleaner) *MergeExtractor {
	return &MergeExtractor{cleaner: cleaner}
}

// Extract returns the heading markup, the cleaned blocks and the original
// page images, in that order.
func (e *MergeExtractor) Extract(rawHTML string, ignoreWords []string) (*pagex.ExtractResult, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to parse HTML: %v", err)
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return &pagex.ExtractResult{Title: pagex.NoTitle}, nil
	}

	cleaned, err := e.cleaner.Clean(rawHTML)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to clean article: %v", err)
	}
	article, err := parseFragment(cleaned)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to parse article: %v", err)
	}

	var b strings.Builder
	b.WriteString(renderNode(h1.Get(0)))

	seen := make(map[string]bool)
	w := &blockWalker{words: ignoreWords, out: &b}
	w.walk(article.Get(0))
	article.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		seen[src] = true
	})

	for _, img := range pageImages(doc, ignoreWords) {
		src := attr(img, "src")
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		b.WriteString(renderNode(img))
	}

	return &pagex.ExtractResult{
		Title:       titleOrDefault(headingTitle(h1)),
		ContentHTML: b.String(),
	}, nil
}

// blockWalker emits the cleaned article's blocks in document order until a
// block mentions an ignore word. Once that happens, nothing else is
// emitted, including the triggering block.
type blockWalker struct {
	words []string
	out   *strings.Builder
	skip  bool
}

func (w *blockWalker) walk(n *html.Node) {
	for c := n.FirstChild; c != nil && !w.skip; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		text := matchText(c)
		if !isWrapper(c) && hasStopPhrase(c, w.words) {
			w.skip = true
			return
		}
		switch {
		case c.Data == "h1":
			// The page heading is already in place.
		case isWrapper(c):
			w.walk(c)
		case text == "" && !hasElement(c, "img"):
		default:
			w.out.WriteString(renderNode(c))
		}
	}
}

// isWrapper reports whether n is a container without text of its own.
func isWrapper(n *html.Node) bool {
	if !wrapperTags[n.Data] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}

// pageImages collects images of the original page whose parent is a
// content container, in document order, stopping at the first text node
// that mentions an ignore word.
func pageImages(doc *goquery.Document, words []string) []*html.Node {
	var imgs []*html.Node
	stopped := false
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !stopped; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if _, stop := pagex.MatchStopPhrase(c.Data, words); stop {
					stopped = true
					return
				}
			case html.ElementNode:
				if c.Data == "script" || c.Data == "style" {
					continue
				}
				if c.Data == "img" && c.Parent != nil && imageContainers[c.Parent.Data] {
					imgs = append(imgs, c)
				}
				visit(c)
			}
		}
	}
	for _, n := range doc.Nodes {
		visit(n)
	}
	return imgs
}

func hasElement(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == tag || hasElement(c, tag)) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
