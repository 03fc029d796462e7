package content

import (
	"context"
	"sync"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/reelgrid-io/web-api/models"
)

// Aggregator produces recommendations for a whole watchlist. Movies and
// shows are resolved as independent groups so a failing group never empties
// the other one's contribution.
type Aggregator struct {
	rec      RecommendationsProvider
	resolver *Resolver
}

func NewAggregator(rec RecommendationsProvider, resolver *Resolver) *Aggregator {
	return &Aggregator{
		rec:      rec,
		resolver: resolver,
	}
}

// AggregateForWatchlist resolves bulk recommendations for the movie and show
// groups of a user's watchlist. Empty groups issue no network calls at all.
// Movie results precede show results; the combined list is deduplicated by
// (id, type) since both groups can legitimately share numeric identifiers.
func (s *Aggregator) AggregateForWatchlist(ctx context.Context, uID uuid.UUID, movies, shows []*models.WatchlistItem) []models.Content {
	if len(movies) == 0 && len(shows) == 0 {
		return []models.Content{}
	}

	var (
		movieResults []models.Content
		showResults  []models.Content
		wg           sync.WaitGroup
	)

	if len(movies) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			movieResults = s.resolveGroup(ctx, uID, models.ContentTypeMovie, movies)
		}()
	}
	if len(shows) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			showResults = s.resolveGroup(ctx, uID, models.ContentTypeShow, shows)
		}()
	}
	wg.Wait()

	combined := make([]models.Content, 0, len(movieResults)+len(showResults))
	combined = append(combined, movieResults...)
	combined = append(combined, showResults...)
	return Dedupe(combined)
}

// resolveGroup issues one bulk recommendation call for a group and resolves
// the returned candidates with the group's type. Any group-level failure is
// logged and reduces the group's contribution to empty.
func (s *Aggregator) resolveGroup(ctx context.Context, uID uuid.UUID, t models.ContentType, items []*models.WatchlistItem) []models.Content {
	resp, err := s.rec.GetBulk(ctx, items)
	if err != nil {
		log.WithError(err).
			WithField("user_id", uID).
			WithField("content_type", t).
			Warn("failed to get bulk recommendations, dropping group")
		return nil
	}
	if !resp.OK() || len(resp.Recommendations) == 0 {
		log.WithField("user_id", uID).
			WithField("content_type", t).
			Info("no bulk recommendations for group")
		return nil
	}
	return s.resolver.resolveCandidates(ctx, resp.Recommendations, t)
}
