package pagex

import (
	"context"
	"fmt"
	"net/http"
)

// UserAgent is the desktop browser identity presented by every fetcher.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FetchOutcome is the result of one fetch attempt. It is consumed once by
// the extraction pipeline and not retained.
type FetchOutcome struct {
	// HTML is the page markup. Empty on failure.
	HTML string

	// Status describes the response, e.g. "Response code: 200 - OK".
	Status string

	// Err is nil on success and an EFETCH error otherwise.
	Err error
}

// Succeeded reports whether the fetch produced page markup.
func (o FetchOutcome) Succeeded() bool {
	return o.Err == nil
}

// FetchFailure returns a failed outcome with the given status description.
func FetchFailure(status string) FetchOutcome {
	return FetchOutcome{Status: status, Err: Errorf(EFETCH, "%s", status)}
}

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	// Fetch acquires the page at url. Failures are reported through the
	// outcome rather than aborting the caller.
	Fetch(ctx context.Context, url string) FetchOutcome

	// Close releases resources held by the fetcher.
	Close() error
}

// StatusDescription formats an HTTP status code for reporting.
func StatusDescription(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("Unknown response code: %d", code)
	}
	return fmt.Sprintf("Response code: %d - %s", code, text)
}
