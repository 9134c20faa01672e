// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fulltext

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/meca-fetch/internal/index"
	"github.com/pdiddy/meca-fetch/internal/meca"
	"github.com/pdiddy/meca-fetch/internal/objstore"
	"github.com/pdiddy/meca-fetch/pkg/types"
)

// SourceBioRxiv is the cache source label for archive-bucket deposits.
const SourceBioRxiv = "biorxiv"

// Reason names why an article's full text is unavailable.
type Reason string

const (
	// ReasonNoPublicationDate: the record carried no publication date, so
	// the month folder cannot be determined.
	ReasonNoPublicationDate Reason = "no_publication_date"

	// ReasonNoArchiveFound: the month's index has no entry for the DOI
	// (or the date did not resolve to a month folder).
	ReasonNoArchiveFound Reason = "no_archive_found"

	// ReasonNoContentEntry: the archive holds no content XML entry.
	ReasonNoContentEntry Reason = "no_content_entry"

	// ReasonExtractionError: the archive could not be downloaded.
	ReasonExtractionError Reason = "extraction_error"
)

// UnavailableError reports that full text could not be retrieved, with a
// named reason the caller can branch on.
type UnavailableError struct {
	DOI    string
	Reason Reason
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("full text unavailable for %s: %s", e.DOI, e.Reason)
}

// Fetcher locates an article's archive through the month index and
// extracts its full-text content. A single fetch proceeds sequentially
// end to end; only index building fans out.
type Fetcher struct {
	store  objstore.Store
	months *index.Builder
	cache  *Cache
	log    *zap.Logger
}

// NewFetcher creates a Fetcher. A nil logger disables logging.
func NewFetcher(store objstore.Store, months *index.Builder, cache *Cache, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{store: store, months: months, cache: cache, log: log}
}

// Fetch returns an article's full text. A valid cache entry short-circuits
// all network traffic unless force is set. The cached return value reports
// whether the text came from the cache. On failure the returned error is an
// *UnavailableError naming the reason.
func (f *Fetcher) Fetch(ctx context.Context, article types.ArticleRef, force bool) (text string, cached bool, err error) {
	if !force {
		if text, ok := f.cache.Load(SourceBioRxiv, article.DOI); ok {
			f.log.Debug("full text cache hit", zap.String("doi", article.DOI))
			return text, true, nil
		}
	}

	if article.PublicationDate == "" {
		return "", false, &UnavailableError{DOI: article.DOI, Reason: ReasonNoPublicationDate}
	}

	month, ok := meca.MonthFolder(article.PublicationDate)
	if !ok {
		// An unresolvable date means the archive cannot be located, the
		// same outcome as an index miss.
		f.log.Debug("cannot resolve month folder",
			zap.String("doi", article.DOI), zap.String("date", article.PublicationDate))
		return "", false, &UnavailableError{DOI: article.DOI, Reason: ReasonNoArchiveFound}
	}

	idx := f.months.Month(ctx, month)
	key, ok := idx.DOIs[article.DOI]
	if !ok {
		return "", false, &UnavailableError{DOI: article.DOI, Reason: ReasonNoArchiveFound}
	}

	// Unlike indexing, this is a full download.
	archive, err := f.store.Get(ctx, key)
	if err != nil {
		f.log.Debug("archive download failed",
			zap.String("doi", article.DOI), zap.String("key", key), zap.Error(err))
		return "", false, &UnavailableError{DOI: article.DOI, Reason: ReasonExtractionError}
	}

	text, ok = meca.ExtractContentXML(archive)
	if !ok {
		f.log.Warn("no content XML in archive",
			zap.String("doi", article.DOI), zap.String("key", key))
		return "", false, &UnavailableError{DOI: article.DOI, Reason: ReasonNoContentEntry}
	}

	if err := f.cache.Save(SourceBioRxiv, article.DOI, text); err != nil {
		f.log.Warn("caching full text failed",
			zap.String("doi", article.DOI), zap.Error(err))
	}
	return text, false, nil
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Fetched int
	Cached  int
	Failed  int
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Cached + r.Failed
}

// HasFailures reports whether any records failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBatch processes multiple article records, printing per-item status
// and returning a summary. It continues after individual failures.
func (f *Fetcher) FetchBatch(ctx context.Context, articles []types.ArticleRef, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, article := range articles {
		text, cached, err := f.Fetch(ctx, article, force)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", article.DOI, err)
			result.Failed++
		case cached:
			fmt.Fprintf(w, "cached:  %s\n", article.DOI)
			result.Cached++
		default:
			fmt.Fprintf(w, "fetched: %s (%d bytes)\n", article.DOI, len(text))
			result.Fetched++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d cached, %d failed (total: %d)\n",
		result.Fetched, result.Cached, result.Failed, result.Total())
	return result
}
