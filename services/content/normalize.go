package content

import (
	"math"
	"strconv"
	"time"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p/original"

	posterPlaceholderURL   = "https://placehold.co/500x750?text=No+Poster"
	backdropPlaceholderURL = "https://placehold.co/1280x720?text=No+Backdrop"

	unknownTitle           = "Unknown Title"
	placeholderDescription = "No description available."
)

// YearMode controls what an unparsable or missing date yields. Catalog
// listings substitute the current year, recommendation and search results
// keep 0 so stale candidates sort last.
type YearMode int

const (
	YearModeStrict YearMode = iota
	YearModeLenient
)

// DetectType classifies a raw record when no explicit type is known. Records
// carrying an explicit media_type discriminant (multi search) are trusted;
// otherwise the presence of a title field marks a movie, a name field a show.
func DetectType(raw *tmdb.RawRecord) models.ContentType {
	switch raw.MediaType {
	case "movie":
		return models.ContentTypeMovie
	case "tv", "show":
		return models.ContentTypeShow
	}
	if raw.Title != "" || raw.OriginalTitle != "" {
		return models.ContentTypeMovie
	}
	return models.ContentTypeShow
}

// Normalize converts one raw metadata record into the internal content model.
// It never fails: any missing or malformed field degrades to its default.
// A nil hint falls back to DetectType; cast is always left empty here and is
// resolved separately from a credits fetch.
func Normalize(raw *tmdb.RawRecord, hint *models.ContentType, mode YearMode) models.Content {
	t := DetectType(raw)
	if hint != nil {
		t = *hint
	}

	c := models.Content{
		ID:          strconv.FormatInt(raw.ID, 10),
		Type:        t,
		Genre:       genreNames(raw.Genres),
		Rating:      roundRating(raw.VoteAverage),
		Description: raw.Overview,
		Poster:      imageURL(raw.PosterPath, posterPlaceholderURL),
		Backdrop:    imageURL(raw.BackdropPath, backdropPlaceholderURL),
		Cast:        []string{},
	}
	if c.Description == "" {
		c.Description = placeholderDescription
	}

	if t == models.ContentTypeMovie {
		c.Title = firstNonEmpty(raw.Title, raw.OriginalTitle, unknownTitle)
		c.Year = parseYear(raw.ReleaseDate, mode)
		c.Duration = raw.Runtime
	} else {
		c.Title = firstNonEmpty(raw.Name, raw.OriginalName, unknownTitle)
		c.Year = parseYear(raw.FirstAirDate, mode)
		c.Seasons = raw.NumberOfSeasons
		c.Episodes = raw.NumberOfEpisodes
		if len(raw.EpisodeRunTime) > 0 {
			c.EpisodeDuration = raw.EpisodeRunTime[0]
		}
		if len(raw.CreatedBy) > 0 {
			c.Creator = raw.CreatedBy[0].Name
		}
	}
	return c
}

// NormalizeAll normalizes a batch of raw records with a shared hint and mode.
func NormalizeAll(raws []tmdb.RawRecord, hint *models.ContentType, mode YearMode) []models.Content {
	result := make([]models.Content, 0, len(raws))
	for i := range raws {
		result = append(result, Normalize(&raws[i], hint, mode))
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func genreNames(genres []tmdb.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// roundRating rounds the upstream vote average half-up to one decimal place.
func roundRating(voteAverage float64) float64 {
	return math.Round(voteAverage*10) / 10
}

// parseYear takes the calendar year from a YYYY-MM-DD date string.
func parseYear(date string, mode YearMode) int {
	if len(date) >= 4 {
		if year, err := strconv.Atoi(date[:4]); err == nil && year > 0 {
			return year
		}
	}
	if mode == YearModeLenient {
		return time.Now().Year()
	}
	return 0
}

func imageURL(path, placeholder string) string {
	if path == "" {
		return placeholder
	}
	return imageBaseURL + path
}
