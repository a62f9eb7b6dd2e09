package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagex.DatasetService = (*DatasetService)(nil)

// DatasetService implements pagex.DatasetService using SQLite. Each dataset
// is stored as one row in runs plus one row per accepted or failed record.
type DatasetService struct {
	db *DB
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(db *DB) *DatasetService {
	return &DatasetService{db: db}
}

// CreateDataset stores ds with its records in a single transaction.
func (s *DatasetService) CreateDataset(ctx context.Context, ds *pagex.Dataset) (err error) {
	if ds == nil {
		return pagex.Errorf(pagex.EINVALID, "dataset required")
	}
	if err := ds.Request.Validate(); err != nil {
		return err
	}

	ds.ID = uuid.New().String()
	if ds.CreatedAt.IsZero() {
		ds.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	req := ds.Request
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, strategy, fetch_mode, ignore_words, min_chars, max_chars, accepted, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ds.ID, string(req.Strategy), string(req.FetchMode), joinList(req.IgnoreWords),
		req.MinChars, req.MaxChars, len(ds.Records), len(ds.Failed),
		ds.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	position := 0
	for _, group := range [][]*pagex.ParseRecord{ds.Records, ds.Failed} {
		for _, r := range group {
			if err = insertRecord(ctx, tx, ds.ID, position, r); err != nil {
				return err
			}
			position++
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, runID string, position int, r *pagex.ParseRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO records (id, run_id, record_id, status, title, content, content_hash, source_url,
			response_description, images_original, images_rewritten, text_length, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, r.ID, string(r.Status), r.Title, r.Content, hashContent(r.Content),
		r.SourceURL, r.ResponseDescription, joinList(r.ImagesOriginal), joinList(r.ImagesRewritten),
		r.TextLength, position)
	if err != nil {
		return fmt.Errorf("insert record %s: %w", r.SourceURL, err)
	}
	return nil
}

// FindDatasetByID retrieves a dataset with all of its records.
func (s *DatasetService) FindDatasetByID(ctx context.Context, id string) (*pagex.Dataset, error) {
	summaries, err := s.FindDatasets(ctx, pagex.DatasetFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, pagex.Errorf(pagex.ENOTFOUND, "dataset not found")
	}
	sum := summaries[0]

	ds := &pagex.Dataset{
		ID:        sum.ID,
		CreatedAt: sum.CreatedAt,
		Request:   sum.Request,
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, status, title, content, source_url, response_description,
			images_original, images_rewritten, text_length
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r pagex.ParseRecord
		var status, imagesOriginal, imagesRewritten string
		if err := rows.Scan(&r.ID, &status, &r.Title, &r.Content, &r.SourceURL,
			&r.ResponseDescription, &imagesOriginal, &imagesRewritten, &r.TextLength); err != nil {
			return nil, err
		}
		r.Status = pagex.Status(status)
		r.ImagesOriginal = splitList(imagesOriginal)
		r.ImagesRewritten = splitList(imagesRewritten)

		if r.Status == pagex.StatusSuccess {
			ds.Records = append(ds.Records, &r)
		} else {
			ds.Failed = append(ds.Failed, &r)
		}
	}
	return ds, rows.Err()
}

// FindDatasets retrieves dataset summaries, newest first.
func (s *DatasetService) FindDatasets(ctx context.Context, filter pagex.DatasetFilter) ([]*pagex.DatasetSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, strategy, fetch_mode, ignore_words, min_chars, max_chars, accepted, failed, created_at
		FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*pagex.DatasetSummary
	for rows.Next() {
		var sum pagex.DatasetSummary
		var strategy, mode, ignoreWords, createdAt string
		if err := rows.Scan(&sum.ID, &strategy, &mode, &ignoreWords, &sum.Request.MinChars,
			&sum.Request.MaxChars, &sum.Accepted, &sum.Failed, &createdAt); err != nil {
			return nil, err
		}
		sum.Request.Strategy = pagex.Strategy(strategy)
		sum.Request.FetchMode = pagex.FetchMode(mode)
		sum.Request.IgnoreWords = splitList(ignoreWords)

		if sum.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, &sum)
	}
	return out, rows.Err()
}
