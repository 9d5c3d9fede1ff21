package omdb

// Response represents the subset of the OMDb API response the catalog reads
type Response struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Ratings    []Rating `json:"Ratings"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	Metascore  string   `json:"Metascore"`
	ImdbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	Response   string   `json:"Response"` // "True" or "False"
	Error      string   `json:"Error"`    // Present if Response is "False"
}

// Rating represents a rating from a specific source
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// HasRatings reports whether the response carries any usable score.
func (r *Response) HasRatings() bool {
	if r == nil {
		return false
	}
	return len(r.Ratings) > 0 || (r.ImdbRating != "" && r.ImdbRating != "N/A")
}
