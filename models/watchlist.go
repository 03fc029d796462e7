package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type WatchlistItem struct {
	tableName struct{} `pg:"watchlist"`

	UserID    uuid.UUID   `pg:"user_id,pk,type:uuid" json:"user_id"`
	ContentID string      `pg:"content_id,pk" json:"content_id"`
	Type      ContentType `pg:"type,pk" json:"type"`
	Title     string      `pg:"title" json:"title"`
	Poster    string      `pg:"poster" json:"poster"`
	CreatedAt time.Time   `pg:"created_at,default:now()" json:"created_at"`
}

// GetWatchlist returns the user's saved items split by content type,
// most recently added first within each group.
func GetWatchlist(ctx context.Context, db *pg.DB, uID uuid.UUID) (movies []*WatchlistItem, shows []*WatchlistItem, err error) {
	var items []*WatchlistItem
	err = db.Model(&items).
		Context(ctx).
		Where("user_id = ?", uID).
		Order("created_at DESC").
		Select()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch watchlist")
	}
	for _, item := range items {
		if item.Type == ContentTypeMovie {
			movies = append(movies, item)
		} else {
			shows = append(shows, item)
		}
	}
	return movies, shows, nil
}

func AddToWatchlist(ctx context.Context, db *pg.DB, item *WatchlistItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	_, err := db.Model(item).
		Context(ctx).
		OnConflict("DO NOTHING").
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to insert watchlist item")
	}
	return nil
}

func RemoveFromWatchlist(ctx context.Context, db *pg.DB, uID uuid.UUID, contentID string, t ContentType) error {
	_, err := db.Model((*WatchlistItem)(nil)).
		Context(ctx).
		Where("user_id = ? AND content_id = ? AND type = ?", uID, contentID, t).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to remove watchlist item")
	}
	return nil
}

func IsInWatchlist(ctx context.Context, db *pg.DB, uID uuid.UUID, contentID string, t ContentType) (bool, error) {
	exists, err := db.Model((*WatchlistItem)(nil)).
		Context(ctx).
		Where("user_id = ? AND content_id = ? AND type = ?", uID, contentID, t).
		Exists()
	if err != nil {
		return false, errors.Wrap(err, "failed to check watchlist membership")
	}
	return exists, nil
}
