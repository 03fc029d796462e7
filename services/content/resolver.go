package content

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/recommender"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

// RecommendationsProvider is the recommendation backend surface the engine
// depends on.
type RecommendationsProvider interface {
	GetSimilar(ctx context.Context, t models.ContentType, seedID string) (*recommender.Response, error)
	GetBulk(ctx context.Context, items []*models.WatchlistItem) (*recommender.Response, error)
}

// Ensure the recommender client implements RecommendationsProvider
var _ RecommendationsProvider = (*recommender.Api)(nil)

// DetailsProvider is the per-candidate fetch surface used during candidate
// resolution. Credits are never needed for a recommendation tile.
type DetailsProvider interface {
	FetchDetails(ctx context.Context, id string, t models.ContentType) (*tmdb.RawRecord, error)
}

// Ensure Fetcher implements DetailsProvider
var _ DetailsProvider = (*Fetcher)(nil)

// Resolver turns a seed item into a list of fully normalized recommended
// records.
type Resolver struct {
	rec     RecommendationsProvider
	fetcher DetailsProvider
}

func NewResolver(rec RecommendationsProvider, fetcher DetailsProvider) *Resolver {
	return &Resolver{
		rec:     rec,
		fetcher: fetcher,
	}
}

// ResolveRecommendations asks the recommendation backend for candidates
// related to the seed and resolves each one to a normalized record. A failed
// seed lookup propagates to the caller; a backend reply without candidates is
// a normal empty result. Recommendation lists are homogeneous, so every
// candidate is normalized with the seed's type.
func (s *Resolver) ResolveRecommendations(ctx context.Context, seedID string, seedType models.ContentType) ([]models.Content, error) {
	resp, err := s.rec.GetSimilar(ctx, seedType, seedID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recommendations")
	}
	if !resp.OK() || len(resp.Recommendations) == 0 {
		log.WithField("seed_id", seedID).
			WithField("seed_type", seedType).
			Info("no recommendations for seed")
		return []models.Content{}, nil
	}
	return s.resolveCandidates(ctx, resp.Recommendations, seedType), nil
}

// resolveCandidates fans out one concurrent detail fetch per candidate
// identifier and joins on all of them. Each fetch writes only to its own
// slot, so output order follows candidate order; a failed candidate is
// logged and dropped without failing the batch.
func (s *Resolver) resolveCandidates(ctx context.Context, ids []int64, t models.ContentType) []models.Content {
	slots := make([]*models.Content, len(ids))
	var wg sync.WaitGroup

	for i, candidateID := range ids {
		wg.Add(1)
		go func(index int, rawID int64) {
			defer wg.Done()

			id := strconv.FormatInt(rawID, 10)
			raw, err := s.fetcher.FetchDetails(ctx, id, t)
			if err != nil {
				log.WithError(err).
					WithField("content_id", id).
					WithField("content_type", t).
					Warn("failed to fetch candidate details, dropping candidate")
				return
			}
			c := Normalize(raw, &t, YearModeStrict)
			slots[index] = &c
		}(i, candidateID)
	}
	wg.Wait()

	resolved := make([]models.Content, 0, len(ids))
	for _, slot := range slots {
		if slot != nil {
			resolved = append(resolved, *slot)
		}
	}
	return Dedupe(resolved)
}
