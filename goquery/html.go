// Package goquery implements the heading-anchored extractors and the
// sanitizer on top of goquery and golang.org/x/net/html.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagex"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseDocument parses a full page.
func parseDocument(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// parseFragment parses an HTML fragment in a <body> context and returns a
// selection holding a detached <div> whose children are the fragment's
// top-level nodes.
func parseFragment(fragment string) (*goquery.Selection, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return goquery.NewDocumentFromNode(root).Selection, nil
}

// renderNode returns the outer HTML of n.
func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// renderChildren returns the inner HTML of n.
func renderChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// strippedText returns the text of sel with every run of whitespace
// collapsed to a single space and the ends trimmed.
func strippedText(sel *goquery.Selection) string {
	return collapse(sel.Text())
}

// matchText returns the text of n with a space between adjacent text nodes,
// so that words split across inline elements stay separate.
func matchText(n *html.Node) string {
	return collapse(nodeText(n, " "))
}

// hasStopPhrase reports whether the text of n contains an ignore word,
// either with text nodes joined as rendered ("Rel<span>ated</span>") or
// with a space between them ("Follow us on <a>Twitter</a>").
func hasStopPhrase(n *html.Node, words []string) bool {
	for _, text := range []string{collapse(nodeText(n, "")), matchText(n)} {
		if _, ok := pagex.MatchStopPhrase(text, words); ok {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node, sep string) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(sep)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// headingTitle returns the stripped text of the first <h1>, or "".
func headingTitle(h1 *goquery.Selection) string {
	if h1.Length() == 0 {
		return ""
	}
	return strippedText(h1)
}

// TextLength returns the number of visible characters in an HTML fragment.
// Whitespace runs count as one character and markup is not counted.
func TextLength(fragment string) int {
	sel, err := parseFragment(fragment)
	if err != nil {
		return 0
	}
	return utf8.RuneCountInString(strippedText(sel))
}
