package dataset

import (
	"context"

	"github.com/inference-directory/infdir/internal/logging"
	"github.com/inference-directory/infdir/internal/models"
)

// DefaultPageSize is the page length requested from the source.
const DefaultPageSize = 100

// Fetcher aggregates every page of a Source into one record list.
type Fetcher struct {
	source   Source
	pageSize int
}

func NewFetcher(source Source, pageSize int) *Fetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Fetcher{source: source, pageSize: pageSize}
}

// FetchAll requests pages from offset 0 until a page is empty, the declared
// total is reached, or, when no total is declared, a page comes back short.
//
// A page that fails ends pagination: the records gathered so far are
// returned and the failure is only logged. Records are returned in arrival
// order without deduplication. The error is non-nil only when ctx ends;
// the partial result is returned alongside it.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	offset := 0
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		page, err := f.source.FetchPage(ctx, offset, f.pageSize)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return records, ctxErr
			}
			logging.Error("Dataset page request failed, keeping partial result",
				"offset", offset,
				"records", len(records),
				"error", err)
			break
		}
		pages++

		if page.Rows == 0 {
			break
		}
		records = append(records, page.Records...)
		offset += page.Rows

		if page.Total > 0 && offset >= page.Total {
			break
		}
		if page.Total <= 0 && page.Rows < f.pageSize {
			break
		}
	}

	logging.Info("Dataset fetch finished", "pages", pages, "records", len(records))
	return records, nil
}
