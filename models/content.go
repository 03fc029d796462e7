package models

type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeShow  ContentType = "show"
)

func (t ContentType) String() string {
	return string(t)
}

// Content is the normalized representation of a movie or show handed to the
// presentation layer. Exactly one of the type-specific field groups is
// meaningful, selected by Type.
type Content struct {
	ID          string      `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Genre       []string    `json:"genre"`
	Rating      float64     `json:"rating"`
	Year        int         `json:"year"`
	Description string      `json:"description"`
	Poster      string      `json:"poster"`
	Backdrop    string      `json:"backdrop"`
	Cast        []string    `json:"cast"`

	// Movie-only fields
	Duration int    `json:"duration,omitempty"`
	Director string `json:"director,omitempty"`

	// Show-only fields
	Creator         string `json:"creator,omitempty"`
	Seasons         int    `json:"seasons,omitempty"`
	Episodes        int    `json:"episodes,omitempty"`
	EpisodeDuration int    `json:"episodeDuration,omitempty"`
}

// ContentKey identifies a piece of content. A movie and a show can share a
// numeric id upstream, so the type is part of the key.
type ContentKey struct {
	ID   string
	Type ContentType
}

func (s *Content) Key() ContentKey {
	return ContentKey{ID: s.ID, Type: s.Type}
}
