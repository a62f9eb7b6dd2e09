package pagex

import (
	"context"
	"time"
)

// DatasetService persists the datasets produced by batch runs.
type DatasetService interface {
	// CreateDataset stores a dataset and assigns its ID and CreatedAt.
	CreateDataset(ctx context.Context, ds *Dataset) error

	// FindDatasetByID retrieves a dataset with its records.
	// Returns ENOTFOUND if the dataset does not exist.
	FindDatasetByID(ctx context.Context, id string) (*Dataset, error)

	// FindDatasets retrieves dataset summaries, newest first. Records are
	// not loaded; use FindDatasetByID for the full dataset.
	FindDatasets(ctx context.Context, filter DatasetFilter) ([]*DatasetSummary, error)
}

// DatasetFilter represents a filter for FindDatasets.
type DatasetFilter struct {
	ID *string

	Offset int
	Limit  int
}

// DatasetSummary describes a stored dataset without its records.
type DatasetSummary struct {
	ID        string
	CreatedAt time.Time
	Request   ParseRequest
	Accepted  int
	Failed    int
}
