// Package etree converts extracted HTML into XML documents using
// beevik/etree and exports datasets as XML files.
package etree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagex"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RootTag is the root element of every converted document.
const RootTag = "root"

var xmlNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// ConvertHTML mirrors the element tree of an HTML fragment as XML under a
// <root> element. Element names and attributes are copied; an element
// whose only child is text gets that text, trimmed. Other text nodes are
// dropped. When the fragment has no elements or cannot be mirrored, the
// result is the raw fragment wrapped in CDATA. ConvertHTML never fails.
func ConvertHTML(fragment string) string {
	out, err := convert(fragment)
	if err != nil {
		return Fallback(fragment)
	}
	return out
}

func convert(fragment string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pagex.Errorf(pagex.ECONVERT, "convert panicked: %v", r)
		}
	}()

	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", pagex.Errorf(pagex.ECONVERT, "parse fragment: %v", err)
	}

	doc := etree.NewDocument()
	root := doc.CreateElement(RootTag)
	elements := 0
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if err := mirror(root, n); err != nil {
			return "", err
		}
		elements++
	}
	if elements == 0 {
		return "", pagex.Errorf(pagex.ECONVERT, "no elements")
	}

	out, err = doc.WriteToString()
	if err != nil {
		return "", pagex.Errorf(pagex.ECONVERT, "write xml: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", pagex.Errorf(pagex.ECONVERT, "empty result")
	}
	return out, nil
}

// mirror appends a copy of n, and its element descendants, to parent.
func mirror(parent *etree.Element, n *html.Node) error {
	if !xmlNameRe.MatchString(n.Data) {
		return pagex.Errorf(pagex.ECONVERT, "invalid element name %q", n.Data)
	}
	el := parent.CreateElement(n.Data)
	for _, a := range n.Attr {
		if !xmlNameRe.MatchString(a.Key) {
			return pagex.Errorf(pagex.ECONVERT, "invalid attribute name %q", a.Key)
		}
		el.CreateAttr(a.Key, xmlChars(a.Val))
	}
	if c := n.FirstChild; c != nil && c.NextSibling == nil && c.Type == html.TextNode {
		el.SetText(xmlChars(strings.TrimSpace(c.Data)))
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if err := mirror(el, c); err != nil {
			return err
		}
	}
	return nil
}

// Fallback wraps fragment in a CDATA section under <root>. A "]]>" inside
// the fragment is split across two sections.
func Fallback(fragment string) string {
	body := strings.ReplaceAll(xmlChars(fragment), "]]>", "]]]]><![CDATA[>")
	return fmt.Sprintf("<%s><![CDATA[%s]]></%s>", RootTag, body, RootTag)
}

// xmlChars drops runes that XML 1.0 does not allow.
func xmlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF, r >= 0xD800 && r <= 0xDFFF:
			return -1
		}
		return r
	}, s)
}
