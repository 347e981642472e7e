package model

// Movie is the cached search-result document in the "movies" collection.
// UserQuery is the normalized search string that produced it and acts as the
// cache key for repeat searches.
type Movie struct {
	UserQuery   string   `bson:"user_query,omitempty" json:"user_query,omitempty"`
	Id          int64    `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	ReleaseDate string   `bson:"release_date" json:"release_date"`
	Overview    string   `bson:"overview" json:"overview"`
	VoteAverage float64  `bson:"vote_average" json:"vote_average"`
	VoteCount   int64    `bson:"vote_count" json:"vote_count"`
	PosterUrl   *string  `bson:"poster_url" json:"poster_url"`
	Reviews     []Review `bson:"reviews" json:"reviews"`
}

// Review is embedded in a movie's reviews array. Date is supplied by the
// client, not the server.
type Review struct {
	Username   string `bson:"username" json:"username"`
	ReviewText string `bson:"reviewText" json:"reviewText"`
	Date       string `bson:"date" json:"date"`
}

// MovieSummary is the provider's list-view shape, used when enriching
// watch-list/watched entries with live metadata.
type MovieSummary struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
	PosterUrl   *string `json:"poster_url"`
}

// MovieDetail is the provider's detail-view shape merged with the locally
// stored reviews.
type MovieDetail struct {
	Id          int64    `json:"id"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	VoteAverage float64  `json:"vote_average"`
	VoteCount   int64    `json:"vote_count"`
	Genres      string   `json:"genres"`
	PosterUrl   *string  `json:"poster_url"`
	BackdropUrl *string  `json:"backdrop_url"`
	Reviews     []Review `json:"reviews"`
}

type MovieListRes struct {
	Movies []MovieSummary `json:"movies"`
}

type NotificationListRes struct {
	Notifications []Notification `json:"notifications"`
}
