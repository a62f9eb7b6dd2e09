// Package bloom provides a probabilistic membership filter for blacklist
// entries.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter keyed by normalized blacklist entries.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected entries
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds an entry to the filter. Entries are compared case-insensitively.
func (f *Filter) Add(entry string) {
	f.f.AddString(normalize(entry))
}

// MayContain returns true if the entry might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) MayContain(entry string) bool {
	return f.f.TestString(normalize(entry))
}

// EstimatedCount returns the approximate number of entries in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func normalize(entry string) string {
	return strings.ToLower(strings.TrimSpace(entry))
}
