package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/pagex"
	"github.com/fwojciec/pagex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testDataset() *pagex.Dataset {
	return &pagex.Dataset{
		Request: *pagex.NewParseRequest(pagex.StrategyReadability, pagex.FetchModeBrowser,
			[]string{"Related", "Share this"}, 100, pagex.Unbounded),
		Records: []*pagex.ParseRecord{
			{
				ID:                  "1.2",
				Status:              pagex.StatusSuccess,
				Title:               "Second",
				Content:             "<h1>Second</h1><p>body</p>",
				SourceURL:           "https://example.com/b",
				ResponseDescription: "Rendered in browser",
				ImagesOriginal:      []string{"/a.png", "/b.png"},
				ImagesRewritten:     []string{"https://example.com/a.png", "https://example.com/b.png"},
				TextLength:          10,
			},
			{
				ID:         "1.3",
				Status:     pagex.StatusSuccess,
				Title:      "First",
				Content:    "<h1>First</h1>",
				SourceURL:  "https://example.com/a",
				TextLength: 5,
			},
		},
		Failed: []*pagex.ParseRecord{
			pagex.NewFailureRecord("https://down.example.com/", "Request failed: refused"),
		},
	}
}

func TestDatasetService_CreateDataset(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and creation time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ds := testDataset()

		require.NoError(t, svc.CreateDataset(context.Background(), ds))

		assert.NotEmpty(t, ds.ID)
		assert.False(t, ds.CreatedAt.IsZero())
	})

	t.Run("keeps a preset creation time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ds := testDataset()
		created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		ds.CreatedAt = created

		require.NoError(t, svc.CreateDataset(context.Background(), ds))

		got, err := svc.FindDatasetByID(context.Background(), ds.ID)
		require.NoError(t, err)
		assert.True(t, created.Equal(got.CreatedAt))
	})

	t.Run("stores an empty dataset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ds := &pagex.Dataset{Request: *pagex.NewParseRequest(pagex.StrategySiblings, pagex.FetchModeHTTP, nil, 0, pagex.Unbounded)}

		require.NoError(t, svc.CreateDataset(context.Background(), ds))

		got, err := svc.FindDatasetByID(context.Background(), ds.ID)
		require.NoError(t, err)
		assert.True(t, got.Empty())
	})

	t.Run("rejects an invalid request", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ds := &pagex.Dataset{}

		err := svc.CreateDataset(context.Background(), ds)

		assert.Equal(t, pagex.EINVALID, pagex.ErrorCode(err))
	})
}

func TestDatasetService_FindDatasetByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips records in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ds := testDataset()
		require.NoError(t, svc.CreateDataset(context.Background(), ds))

		got, err := svc.FindDatasetByID(context.Background(), ds.ID)

		require.NoError(t, err)
		assert.Equal(t, ds.ID, got.ID)
		assert.Equal(t, ds.Request, got.Request)
		assert.Equal(t, ds.Records, got.Records)
		assert.Equal(t, ds.Failed, got.Failed)
	})

	t.Run("returns ENOTFOUND for a missing dataset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))

		_, err := svc.FindDatasetByID(context.Background(), "missing")

		assert.Equal(t, pagex.ENOTFOUND, pagex.ErrorCode(err))
	})
}

func TestDatasetService_FindDatasets(t *testing.T) {
	t.Parallel()

	t.Run("lists newest first with counts", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ctx := context.Background()
		var ids []string
		for i := range 3 {
			ds := testDataset()
			ds.CreatedAt = time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
			require.NoError(t, svc.CreateDataset(ctx, ds))
			ids = append(ids, ds.ID)
		}

		got, err := svc.FindDatasets(ctx, pagex.DatasetFilter{})

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{got[0].ID, got[1].ID, got[2].ID})
		assert.Equal(t, 2, got[0].Accepted)
		assert.Equal(t, 1, got[0].Failed)
		assert.Equal(t, []string{"Related", "Share this"}, got[0].Request.IgnoreWords)
	})

	t.Run("breaks creation time ties by insertion order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ctx := context.Background()
		created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		var ids []string
		for range 2 {
			ds := testDataset()
			ds.CreatedAt = created
			require.NoError(t, svc.CreateDataset(ctx, ds))
			ids = append(ids, ds.ID)
		}

		got, err := svc.FindDatasets(ctx, pagex.DatasetFilter{Limit: 1})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ids[1], got[0].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ctx := context.Background()
		for i := range 5 {
			ds := testDataset()
			ds.CreatedAt = time.Date(2026, 1, 1, i, 0, 0, 0, time.UTC)
			require.NoError(t, svc.CreateDataset(ctx, ds))
		}

		page, err := svc.FindDatasets(ctx, pagex.DatasetFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		page, err = svc.FindDatasets(ctx, pagex.DatasetFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, 3, page[0].CreatedAt.Hour())
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDatasetService(setupTestDB(t))
		ctx := context.Background()
		var last string
		for range 2 {
			ds := testDataset()
			require.NoError(t, svc.CreateDataset(ctx, ds))
			last = ds.ID
		}

		got, err := svc.FindDatasets(ctx, pagex.DatasetFilter{ID: &last})

		require.NoError(t, err)
		require.Len(t, got, 1, fmt.Sprintf("filter %s", last))
		assert.Equal(t, last, got[0].ID)
	})
}
