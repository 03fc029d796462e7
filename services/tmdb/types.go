package tmdb

// RawRecord covers both the list-item and detail shapes TMDB returns for
// movies and shows. Movie records carry title/release_date, show records
// carry name/first_air_date; detail records additionally carry runtime,
// season/episode counts and resolved genre names.
type RawRecord struct {
	ID            int64   `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Name          string  `json:"name"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int64 `json:"genre_ids"`
	Genres        []Genre `json:"genres"`

	// Detail-only fields
	Runtime          int       `json:"runtime"`
	NumberOfSeasons  int       `json:"number_of_seasons"`
	NumberOfEpisodes int       `json:"number_of_episodes"`
	EpisodeRunTime   []int     `json:"episode_run_time"`
	CreatedBy        []Creator `json:"created_by"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Creator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Credits struct {
	ID   int64       `json:"id"`
	Cast []CastEntry `json:"cast"`
	Crew []CrewEntry `json:"crew"`
}

type CastEntry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type CrewEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type CatalogResponse struct {
	Page         int         `json:"page"`
	Results      []RawRecord `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}
