// Package catalog merges the primary metadata provider with the secondary
// ratings provider into display-ready records.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned before any provider call is made.
var (
	ErrInvalidTitleID   = errors.New("invalid title id")
	ErrInvalidMediaKind = errors.New("invalid media kind")
	ErrEmptyQuery       = errors.New("search query is empty")
)

// MediaKind distinguishes movies from shows.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindShow  MediaKind = "show"
)

// ParseMediaKind maps user input onto a MediaKind. "tv" and "series" are accepted as shows.
func ParseMediaKind(s string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return KindMovie, nil
	case "show", "tv", "series":
		return KindShow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaKind, s)
	}
}

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	return k == KindMovie || k == KindShow
}

// ProviderType is the media type path segment the primary provider uses.
func (k MediaKind) ProviderType() string {
	if k == KindShow {
		return "tv"
	}
	return "movie"
}

// TitleRecord is the merged view of a single movie or show.
type TitleRecord struct {
	ID               string            `json:"id" yaml:"id"`
	Kind             MediaKind         `json:"kind" yaml:"kind"`
	Title            string            `json:"title" yaml:"title"`
	Tagline          *string           `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Overview         string            `json:"overview" yaml:"overview"`
	ReleaseDate      *string           `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Runtime          *int              `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Genres           []string          `json:"genres" yaml:"genres"`
	PosterPath       *string           `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	Rating           float64           `json:"rating" yaml:"rating"`
	SecondaryRatings map[string]string `json:"secondary_ratings" yaml:"secondary_ratings"`
	ExternalID       *string           `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// Year returns the four digit release year, or "" when the date is unknown.
func (r TitleRecord) Year() string {
	if r.ReleaseDate == nil || len(*r.ReleaseDate) < 4 {
		return ""
	}
	return (*r.ReleaseDate)[:4]
}

// VideoType classifies a video candidate.
type VideoType string

const (
	VideoTrailer VideoType = "Trailer"
	VideoTeaser  VideoType = "Teaser"
	VideoClip    VideoType = "Clip"
	VideoOther   VideoType = "Other"
)

func parseVideoType(s string) VideoType {
	switch VideoType(s) {
	case VideoTrailer, VideoTeaser, VideoClip:
		return VideoType(s)
	default:
		return VideoOther
	}
}

// SiteYouTube is the only video host the trailer selector accepts.
const SiteYouTube = "YouTube"

// VideoCandidate is a video attached to a title.
type VideoCandidate struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Site     string    `json:"site" yaml:"site"`
	Type     VideoType `json:"type" yaml:"type"`
	Official bool      `json:"official" yaml:"official"`
	Key      string    `json:"key" yaml:"key"`
}

// WatchURL returns the YouTube watch page for the video.
func (v VideoCandidate) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.Key
}

// EmbedURL returns the YouTube embed URL for the video.
func (v VideoCandidate) EmbedURL() string {
	return "https://www.youtube.com/embed/" + v.Key
}

// CastMember is a billed cast credit.
type CastMember struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Character   string  `json:"character" yaml:"character"`
	ProfilePath *string `json:"profile_path,omitempty" yaml:"profile_path,omitempty"`
}

// SimilarTitleRef is a lightweight pointer to a related title.
type SimilarTitleRef struct {
	ID         string  `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	PosterPath *string `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	Rating     float64 `json:"rating" yaml:"rating"`
}

// Genre is a provider genre.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// WatchProvider is a service offering a title.
type WatchProvider struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	LogoPath *string `json:"logo_path,omitempty" yaml:"logo_path,omitempty"`
}

// WatchProviders lists where a title is available in one region.
type WatchProviders struct {
	Region string          `json:"region" yaml:"region"`
	Link   string          `json:"link,omitempty" yaml:"link,omitempty"`
	Stream []WatchProvider `json:"stream" yaml:"stream"`
	Rent   []WatchProvider `json:"rent" yaml:"rent"`
	Buy    []WatchProvider `json:"buy" yaml:"buy"`
}

// Empty reports whether no offers exist for the region.
func (w WatchProviders) Empty() bool {
	return len(w.Stream) == 0 && len(w.Rent) == 0 && len(w.Buy) == 0
}
