package readability_test

import (
	"github.com/fwojciec/pagex/goquery"
	"github.com/fwojciec/pagex/readability"
)

func newMergeExtractor() *goquery.MergeExtractor {
	return goquery.NewMergeExtractor(readability.NewCleaner())
}
