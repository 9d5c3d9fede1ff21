package tmdb

// Genre is a TMDB genre id/name pair.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TitleDetails is the subset of /movie/{id} and /tv/{id} the catalog reads.
// Movies fill Title/ReleaseDate/Runtime, shows fill Name/FirstAirDate/EpisodeRunTime.
type TitleDetails struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	Tagline        string  `json:"tagline"`
	ReleaseDate    string  `json:"release_date"`
	FirstAirDate   string  `json:"first_air_date"`
	Runtime        int     `json:"runtime"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	Genres         []Genre `json:"genres"`
	PosterPath     string  `json:"poster_path"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int     `json:"vote_count"`
	Status         string  `json:"status"`
}

// DisplayTitle returns the movie title or the show name.
func (d TitleDetails) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// ExternalIDs is the /external_ids sub-resource.
type ExternalIDs struct {
	IMDbID string `json:"imdb_id"`
	TVDBID int    `json:"tvdb_id"`
}

// Video is a single entry of the /videos sub-resource.
type Video struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Key      string `json:"key"`
	Official bool   `json:"official"`
	Size     int    `json:"size"`
}

// CastEntry is a single cast credit of the /credits sub-resource.
type CastEntry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// ListItem is a row of a paged list endpoint (search, discover, similar).
type ListItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	GenreIDs         []int   `json:"genre_ids"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// DisplayTitle returns the movie title or the show name.
func (i ListItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Page is one page of a list endpoint.
type Page struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []ListItem `json:"results"`
}

// WatchProvider is a streaming/rental/purchase service offering a title.
type WatchProvider struct {
	ProviderID   int    `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	LogoPath     string `json:"logo_path"`
}

// RegionProviders groups the offers for a single region.
type RegionProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}
