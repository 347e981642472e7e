// Package client wraps the TMDB metadata API. Callers must treat an error as
// "provider temporarily unavailable", not as proof a movie does not exist.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"movie_tracker/model"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	tmdbBaseUrl  = "https://api.themoviedb.org/3"
	imageBaseUrl = "https://image.tmdb.org/t/p/"

	posterSizeList   = "w342"
	posterSizeDetail = "w500"
	backdropSize     = "w1280"
)

type IMetadataClient interface {
	SearchMovie(ctx context.Context, query string) ([]model.Movie, error)
	GetMovieSummary(ctx context.Context, movieId int64) (*model.MovieSummary, error)
	GetMovieDetails(ctx context.Context, movieId int64) (*model.MovieDetail, error)
}

type TmdbClient struct {
	baseUrl    string
	imageBase  string
	apiKey     string
	httpClient *http.Client
}

func NewTmdbClient(apiKey string) *TmdbClient {
	return &TmdbClient{
		baseUrl:   tmdbBaseUrl,
		imageBase: imageBaseUrl,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

//------------------------------------------
//------------------------------------------

type movieData struct {
	Id           int64   `json:"id"`
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int64   `json:"vote_count"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type searchResponse struct {
	Results []movieData `json:"results"`
}

//------------------------------------------
//------------------------------------------

func (t *TmdbClient) SearchMovie(ctx context.Context, query string) ([]model.Movie, error) {
	reqUrl := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s&language=en-US",
		t.baseUrl, t.apiKey, url.QueryEscape(query))

	var res searchResponse
	if err := t.getJson(ctx, reqUrl, &res); err != nil {
		return nil, err
	}

	movies := make([]model.Movie, 0, len(res.Results))
	for _, m := range res.Results {
		movies = append(movies, model.Movie{
			Id:          m.Id,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Overview:    m.Overview,
			VoteAverage: m.VoteAverage,
			VoteCount:   m.VoteCount,
			PosterUrl:   t.imageUrl(posterSizeList, m.PosterPath),
			Reviews:     []model.Review{},
		})
	}
	return movies, nil
}

func (t *TmdbClient) GetMovieSummary(ctx context.Context, movieId int64) (*model.MovieSummary, error) {
	var m movieData
	if err := t.getJson(ctx, t.movieUrl(movieId), &m); err != nil {
		return nil, err
	}

	return &model.MovieSummary{
		Id:          m.Id,
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Overview:    m.Overview,
		VoteAverage: roundVote(m.VoteAverage),
		VoteCount:   m.VoteCount,
		PosterUrl:   t.imageUrl(posterSizeList, m.PosterPath),
	}, nil
}

func (t *TmdbClient) GetMovieDetails(ctx context.Context, movieId int64) (*model.MovieDetail, error) {
	var m movieData
	if err := t.getJson(ctx, t.movieUrl(movieId), &m); err != nil {
		return nil, err
	}

	genreNames := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genreNames = append(genreNames, g.Name)
	}

	return &model.MovieDetail{
		Id:          m.Id,
		Title:       m.Title,
		Tagline:     m.Tagline,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Runtime:     m.Runtime,
		VoteAverage: roundVote(m.VoteAverage),
		VoteCount:   m.VoteCount,
		Genres:      strings.Join(genreNames, ", "),
		PosterUrl:   t.imageUrl(posterSizeDetail, m.PosterPath),
		BackdropUrl: t.imageUrl(backdropSize, m.BackdropPath),
		Reviews:     []model.Review{},
	}, nil
}

//------------------------------------------
//------------------------------------------

func (t *TmdbClient) movieUrl(movieId int64) string {
	return fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US", t.baseUrl, movieId, t.apiKey)
}

func (t *TmdbClient) getJson(ctx context.Context, reqUrl string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request failed with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// imageUrl builds a full image url from a provider path fragment. An absent
// fragment yields nil, never a malformed url.
func (t *TmdbClient) imageUrl(size string, path string) *string {
	if path == "" {
		return nil
	}
	u := t.imageBase + size + path
	return &u
}

func roundVote(voteAverage float64) float64 {
	return math.Round(voteAverage*10) / 10
}
