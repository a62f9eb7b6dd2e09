package mock

import (
	"context"

	"github.com/fwojciec/pagex"
)

var _ pagex.DatasetService = (*DatasetService)(nil)

// DatasetService is a mock implementation of pagex.DatasetService.
type DatasetService struct {
	CreateDatasetFn   func(ctx context.Context, ds *pagex.Dataset) error
	FindDatasetByIDFn func(ctx context.Context, id string) (*pagex.Dataset, error)
	FindDatasetsFn    func(ctx context.Context, filter pagex.DatasetFilter) ([]*pagex.DatasetSummary, error)
}

func (s *DatasetService) CreateDataset(ctx context.Context, ds *pagex.Dataset) error {
	return s.CreateDatasetFn(ctx, ds)
}

func (s *DatasetService) FindDatasetByID(ctx context.Context, id string) (*pagex.Dataset, error) {
	return s.FindDatasetByIDFn(ctx, id)
}

func (s *DatasetService) FindDatasets(ctx context.Context, filter pagex.DatasetFilter) ([]*pagex.DatasetSummary, error) {
	return s.FindDatasetsFn(ctx, filter)
}
