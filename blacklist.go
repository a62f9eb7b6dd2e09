package pagex

import (
	"context"
	"net/url"
	"strings"
)

// Blacklist list names.
const (
	// ListUnreachable receives hosts whose pages could not be fetched.
	ListUnreachable = "unreachable"

	// ListRejected receives URLs whose content failed the acceptance gate.
	ListRejected = "rejected"
)

// Blacklist gates URLs before they are fetched.
type Blacklist interface {
	// Contains reports whether the URL, or its host, is listed in any list.
	Contains(ctx context.Context, urlOrDomain string) (bool, error)

	// Append adds entry to the named list. Appending an entry that is
	// already present is a no-op.
	Append(ctx context.Context, list, entry string) error
}

// Host returns the lowercase host of rawURL. Input without a scheme is
// read as a bare domain, optionally followed by a port or path.
func Host(rawURL string) string {
	key := strings.ToLower(strings.TrimSpace(rawURL))
	if strings.Contains(key, "://") {
		u, err := url.Parse(key)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	host, _, _ := strings.Cut(key, "/")
	if h, _, ok := strings.Cut(host, ":"); ok {
		return h
	}
	return host
}
