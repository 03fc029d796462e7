package migrations

import (
	"github.com/go-pg/migrations/v8"
)

func CreateWatchlistTable(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		_, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS watchlist (
				user_id    uuid        NOT NULL,
				content_id text        NOT NULL,
				type       text        NOT NULL,
				title      text        NOT NULL DEFAULT '',
				poster     text        NOT NULL DEFAULT '',
				created_at timestamptz NOT NULL DEFAULT now(),
				PRIMARY KEY (user_id, content_id, type)
			)
		`)
		return err
	}, func(db migrations.DB) error {
		_, err := db.Exec(`DROP TABLE IF EXISTS watchlist`)
		return err
	})
}
