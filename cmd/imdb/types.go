package imdb

// Row is one title from an IMDb list export CSV.
type Row struct {
	ImdbID        string
	Title         string
	OriginalTitle string
	TitleType     string
	URL           string
	Year          int
	IMDbRating    float64
	ReleaseDate   string
	Genres        []string
	YourRating    string
}
