package content

import (
	"github.com/reelgrid-io/web-api/models"
)

// Dedupe removes repeated records keyed by (id, type), keeping the first
// occurrence and preserving relative order.
func Dedupe(items []models.Content) []models.Content {
	if len(items) == 0 {
		return items
	}
	seen := make(map[models.ContentKey]bool, len(items))
	deduped := make([]models.Content, 0, len(items))
	for i := range items {
		key := items[i].Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, items[i])
	}
	return deduped
}
