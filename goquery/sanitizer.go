package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagex"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements pagex.Sanitizer at compile time.
var _ pagex.Sanitizer = (*Sanitizer)(nil)

var absoluteURL = regexp.MustCompile(`https?://[^\s,]+`)

// Sanitizer removes unwanted markup from extracted fragments and rewrites
// image sources to absolute URLs.
type Sanitizer struct {
	tagsToDelete   []string
	tagsToRemove   []string
	stripStyle     bool
	keepAttributes map[string]bool
}

// SanitizerOption configures a Sanitizer.
type SanitizerOption func(*Sanitizer)

// WithTagsToDelete sets the tags removed together with their content.
func WithTagsToDelete(tags ...string) SanitizerOption {
	return func(s *Sanitizer) {
		s.tagsToDelete = tags
	}
}

// WithTagsToRemove sets the tags that are unwrapped: the tag goes, its
// children are kept in its place.
func WithTagsToRemove(tags ...string) SanitizerOption {
	return func(s *Sanitizer) {
		s.tagsToRemove = tags
	}
}

// WithStyleStripping controls removal of style attributes.
func WithStyleStripping(strip bool) SanitizerOption {
	return func(s *Sanitizer) {
		s.stripStyle = strip
	}
}

// WithKeepAttributes sets the attributes that survive sanitizing. Image
// source attributes are always kept.
func WithKeepAttributes(attrs ...string) SanitizerOption {
	return func(s *Sanitizer) {
		s.keepAttributes = make(map[string]bool, len(attrs))
		for _, a := range attrs {
			s.keepAttributes[strings.ToLower(a)] = true
		}
	}
}

// NewSanitizer creates a Sanitizer with the default configuration.
func NewSanitizer(opts ...SanitizerOption) *Sanitizer {
	cfg := pagex.DefaultConfig()
	s := &Sanitizer{}
	WithTagsToDelete(cfg.TagsToDelete...)(s)
	WithTagsToRemove(cfg.TagsToRemove...)(s)
	WithKeepAttributes(cfg.KeepAttributes...)(s)
	for _, opt := range opts {
		opt(s)
	}
	for _, a := range []string{"src", "data-lazy-src", "data-lazy-srcset"} {
		s.keepAttributes[a] = true
	}
	return s
}

// Sanitize cleans fragment and resolves image URLs against baseURL.
func (s *Sanitizer) Sanitize(fragment, baseURL string) (*pagex.SanitizeResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, pagex.Errorf(pagex.EINVALID, "invalid base URL: %v", err)
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return nil, pagex.Errorf(pagex.EEXTRACT, "failed to parse fragment: %v", err)
	}

	if len(s.tagsToDelete) > 0 {
		root.Find(strings.Join(s.tagsToDelete, ",")).Remove()
	}
	if len(s.tagsToRemove) > 0 {
		root.Find(strings.Join(s.tagsToRemove, ",")).Each(func(_ int, sel *goquery.Selection) {
			unwrap(sel.Get(0))
		})
	}

	root.Find("*").Each(func(_ int, sel *goquery.Selection) {
		s.filterAttributes(sel.Get(0))
	})

	result := &pagex.SanitizeResult{}
	imgs := root.Find("img")
	imgs.Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			result.ImagesOriginal = append(result.ImagesOriginal, resolve(base, src))
		}
	})
	imgs.Each(func(_ int, img *goquery.Selection) {
		rewriteImage(img, base)
		if src, ok := img.Attr("src"); ok && src != "" {
			result.ImagesRewritten = append(result.ImagesRewritten, src)
		}
	})

	result.HTML = renderChildren(root.Get(0))
	result.TextLength = TextLength(result.HTML)
	return result, nil
}

func (s *Sanitizer) filterAttributes(n *html.Node) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		key := strings.ToLower(a.Key)
		if key == "style" && s.stripStyle {
			continue
		}
		if s.keepAttributes[key] {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// rewriteImage points src and data-lazy-src at the absolute form of the
// lazy source, falling back to src, and resolves every absolute URL in
// data-lazy-srcset.
func rewriteImage(img *goquery.Selection, base *url.URL) {
	src, _ := img.Attr("data-lazy-src")
	if src == "" {
		src, _ = img.Attr("src")
	}
	if src != "" {
		abs := resolve(base, src)
		img.SetAttr("src", abs)
		img.SetAttr("data-lazy-src", abs)
	}
	if srcset, ok := img.Attr("data-lazy-srcset"); ok && srcset != "" {
		img.SetAttr("data-lazy-srcset", absoluteURL.ReplaceAllStringFunc(srcset, func(u string) string {
			return resolve(base, u)
		}))
	}
}

// resolve returns ref resolved against base, or ref unchanged if it
// cannot be parsed.
func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// unwrap replaces n with its children.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
}
