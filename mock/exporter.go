package mock

import (
	"context"

	"github.com/fwojciec/pagex"
)

var _ pagex.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of pagex.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, ds *pagex.Dataset, dir string) ([]string, error)
}

func (e *Exporter) Export(ctx context.Context, ds *pagex.Dataset, dir string) ([]string, error) {
	return e.ExportFn(ctx, ds, dir)
}
