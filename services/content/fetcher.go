package content

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/webtor-io/lazymap"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

// MetadataProvider is the metadata backend surface the engine depends on.
type MetadataProvider interface {
	GetDetails(ctx context.Context, t models.ContentType, id string) (*tmdb.RawRecord, error)
	GetCredits(ctx context.Context, t models.ContentType, id string) (*tmdb.Credits, error)
}

// Ensure the TMDB client implements MetadataProvider
var _ MetadataProvider = (*tmdb.Api)(nil)

// Bundle holds the detail and credits records of a single item.
type Bundle struct {
	Details *tmdb.RawRecord
	Credits *tmdb.Credits
}

// fetchTimeout bounds every single backend call so one hung fetch cannot
// stall an entire candidate batch.
const fetchTimeout = 10 * time.Second

// Fetcher retrieves detail and credits records with single-flight caching.
// Failed fetches are never retried here; they surface as errors and the
// caller decides whether the batch tolerates them.
type Fetcher struct {
	api          MetadataProvider
	timeout      time.Duration
	detailsCache *lazymap.LazyMap[*tmdb.RawRecord]
	creditsCache *lazymap.LazyMap[*tmdb.Credits]
}

func NewFetcher(api MetadataProvider) *Fetcher {
	return &Fetcher{
		api:     api,
		timeout: fetchTimeout,
		detailsCache: lazymap.New[*tmdb.RawRecord](&lazymap.Config{
			Expire:      time.Hour,
			ErrorExpire: time.Minute,
		}),
		creditsCache: lazymap.New[*tmdb.Credits](&lazymap.Config{
			Expire:      time.Hour,
			ErrorExpire: time.Minute,
		}),
	}
}

// FetchDetails retrieves the canonical detail record for one item.
func (s *Fetcher) FetchDetails(ctx context.Context, id string, t models.ContentType) (*tmdb.RawRecord, error) {
	key := fmt.Sprintf("details_%s_%s", t, id)
	return s.detailsCache.Get(key, func() (*tmdb.RawRecord, error) {
		fCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.api.GetDetails(fCtx, t, id)
	})
}

// FetchCredits retrieves the credits record for one item.
func (s *Fetcher) FetchCredits(ctx context.Context, id string, t models.ContentType) (*tmdb.Credits, error) {
	key := fmt.Sprintf("credits_%s_%s", t, id)
	return s.creditsCache.Get(key, func() (*tmdb.Credits, error) {
		fCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.api.GetCredits(fCtx, t, id)
	})
}

// FetchBundle retrieves details and credits concurrently. The bundle fails
// if either call fails; partial tolerance belongs to batch callers, not to
// a single item's fetch.
func (s *Fetcher) FetchBundle(ctx context.Context, id string, t models.ContentType) (*Bundle, error) {
	var (
		details    *tmdb.RawRecord
		credits    *tmdb.Credits
		detailsErr error
		creditsErr error
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		details, detailsErr = s.FetchDetails(ctx, id, t)
	}()
	go func() {
		defer wg.Done()
		credits, creditsErr = s.FetchCredits(ctx, id, t)
	}()
	wg.Wait()

	if detailsErr != nil {
		return nil, errors.Wrap(detailsErr, "failed to fetch details")
	}
	if creditsErr != nil {
		return nil, errors.Wrap(creditsErr, "failed to fetch credits")
	}
	return &Bundle{Details: details, Credits: credits}, nil
}
