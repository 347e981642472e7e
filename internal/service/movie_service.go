package service

import (
	"context"
	"errors"
	"fmt"
	"movie_tracker/internal/client"
	"movie_tracker/internal/errs"
	"movie_tracker/internal/repository"
	"movie_tracker/model"
	errorHandler "movie_tracker/pkg/error"
	"strings"
	"time"
)

type IMovieService interface {
	Search(ctx context.Context, query string) ([]model.Movie, error)
	Sample(ctx context.Context, size int) ([]model.Movie, error)
	GetMovieDetails(ctx context.Context, movieId int64) (*model.MovieDetail, error)
	SubmitReview(ctx context.Context, movieId int64, reviewer string, reviewText string, date string) error
}

type MovieService struct {
	movieRepo repository.IMovieRepository
	userRepo  repository.IUserRepository
	metadata  client.IMetadataClient
}

func NewMovieService(movieRepo repository.IMovieRepository, userRepo repository.IUserRepository, metadata client.IMetadataClient) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		userRepo:  userRepo,
		metadata:  metadata,
	}
}

//------------------------------------------
//------------------------------------------

// Search serves a normalized query from the movie cache when possible and
// falls back to the metadata provider, persisting whatever it returned. A
// provider failure degrades to an empty result instead of an error.
func (m *MovieService) Search(ctx context.Context, query string) ([]model.Movie, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return []model.Movie{}, nil
	}

	cached, err := m.movieRepo.FindByQuery(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	results, err := m.metadata.SearchMovie(ctx, normalized)
	if err != nil {
		errorHandler.SaveError(fmt.Sprintf("Tmdb search error for %q: %v", normalized, err), err)
		return []model.Movie{}, nil
	}
	for i := range results {
		results[i].UserQuery = normalized
	}

	if len(results) > 0 {
		if err := m.movieRepo.InsertSearchResults(ctx, results); err != nil {
			errorHandler.SaveError(fmt.Sprintf("Failed to cache search results for %q: %v", normalized, err), err)
		}
	}
	return results, nil
}

func (m *MovieService) Sample(ctx context.Context, size int) ([]model.Movie, error) {
	return m.movieRepo.SampleMovies(ctx, size)
}

func (m *MovieService) GetMovieDetails(ctx context.Context, movieId int64) (*model.MovieDetail, error) {
	detail, err := m.metadata.GetMovieDetails(ctx, movieId)
	if err != nil {
		errorHandler.SaveError(fmt.Sprintf("Error fetching movie details %d: %v", movieId, err), err)
		return nil, errs.ErrNotFound
	}

	movie, err := m.movieRepo.FindById(ctx, movieId)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if movie != nil && len(movie.Reviews) > 0 {
		detail.Reviews = movie.Reviews
	}
	return detail, nil
}

//------------------------------------------
//------------------------------------------

func (m *MovieService) SubmitReview(ctx context.Context, movieId int64, reviewer string, reviewText string, date string) error {
	review := model.Review{
		Username:   reviewer,
		ReviewText: reviewText,
		Date:       date,
	}
	if err := m.movieRepo.AppendReview(ctx, movieId, review); err != nil {
		return err
	}

	m.notify(ctx, movieId, reviewText, reviewer)
	return nil
}

// notify fans the review out to every user with the movie in their
// watch-list, except the reviewer (case-insensitive). Failures are logged
// and never fail the review submission; a partial fan-out is not retried.
func (m *MovieService) notify(ctx context.Context, movieId int64, reviewText string, reviewer string) {
	watchers, err := m.userRepo.FindWatchers(ctx, movieId)
	if err != nil {
		errorHandler.SaveError(fmt.Sprintf("Notification fan-out aborted for movie %d: %v", movieId, err), err)
		return
	}

	notification := model.Notification{
		MovieId:  movieId,
		Reviewer: reviewer,
		Text:     reviewText,
		Date:     time.Now().UTC().Format(time.RFC3339),
	}

	for _, username := range watchers {
		if strings.EqualFold(username, reviewer) {
			continue
		}
		err := m.userRepo.PushNotification(ctx, strings.ToLower(username), notification)
		if err != nil {
			errorHandler.SaveError(fmt.Sprintf("Failed to notify %q about movie %d: %v", username, movieId, err), err)
		}
	}
}
