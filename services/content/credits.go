package content

import (
	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

const maxCastEntries = 10

// ApplyCredits fills the credit-derived fields of an already normalized
// record: the ordered cast list and, for movies, the director (the first
// crew entry whose job is exactly "Director").
func ApplyCredits(c *models.Content, credits *tmdb.Credits) {
	if credits == nil {
		return
	}
	cast := make([]string, 0, maxCastEntries)
	for _, entry := range credits.Cast {
		if entry.Name == "" {
			continue
		}
		cast = append(cast, entry.Name)
		if len(cast) == maxCastEntries {
			break
		}
	}
	c.Cast = cast

	if c.Type != models.ContentTypeMovie {
		return
	}
	for _, entry := range credits.Crew {
		if entry.Job == "Director" {
			c.Director = entry.Name
			return
		}
	}
}
