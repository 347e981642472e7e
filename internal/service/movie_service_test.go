package service

import (
	"context"
	"errors"
	"movie_tracker/internal/errs"
	"movie_tracker/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearch_FetchesOnceThenServesFromCache(t *testing.T) {
	t.Parallel()

	movieRepo := newFakeMovieRepo()
	metadata := newFakeMetadata()
	metadata.searchResults["inception"] = []model.Movie{
		{Id: 27205, Title: "Inception", Reviews: []model.Review{}},
		{Id: 64956, Title: "Inception: The Cobol Job", Reviews: []model.Review{}},
	}
	svc := NewMovieService(movieRepo, newFakeUserRepo(), metadata)

	first, err := svc.Search(context.Background(), "  Inception ")
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, 1, metadata.searchCalls)
	for _, m := range first {
		require.Equal(t, "inception", m.UserQuery)
	}

	// A repeat search that normalizes to the same string must not reach the
	// provider and must return the stored documents unchanged.
	second, err := svc.Search(context.Background(), "INCEPTION")
	require.NoError(t, err)
	require.Equal(t, 1, metadata.searchCalls)
	require.Equal(t, first, second)
}

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	metadata := newFakeMetadata()
	svc := NewMovieService(newFakeMovieRepo(), newFakeUserRepo(), metadata)

	movies, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, movies)
	require.Zero(t, metadata.searchCalls)
}

func TestSearch_UpstreamErrorDegradesToEmpty(t *testing.T) {
	t.Parallel()

	movieRepo := newFakeMovieRepo()
	metadata := newFakeMetadata()
	metadata.searchErr = errors.New("tmdb unreachable")
	svc := NewMovieService(movieRepo, newFakeUserRepo(), metadata)

	movies, err := svc.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Empty(t, movies)
	require.Empty(t, movieRepo.byQuery)
}

func TestSearch_EmptyUpstreamResultIsNotCached(t *testing.T) {
	t.Parallel()

	metadata := newFakeMetadata()
	svc := NewMovieService(newFakeMovieRepo(), newFakeUserRepo(), metadata)

	_, err := svc.Search(context.Background(), "no such movie")
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "no such movie")
	require.NoError(t, err)
	require.Equal(t, 2, metadata.searchCalls)
}

func TestGetMovieDetails_MergesStoredReviews(t *testing.T) {
	t.Parallel()

	movieRepo := newFakeMovieRepo()
	movieRepo.byId[42] = &model.Movie{
		Id: 42,
		Reviews: []model.Review{
			{Username: "bob", ReviewText: "great film", Date: "2024-05-01"},
		},
	}
	metadata := newFakeMetadata()
	metadata.details[42] = &model.MovieDetail{Id: 42, Title: "The Answer", Reviews: []model.Review{}}
	svc := NewMovieService(movieRepo, newFakeUserRepo(), metadata)

	detail, err := svc.GetMovieDetails(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "The Answer", detail.Title)
	require.Len(t, detail.Reviews, 1)
	require.Equal(t, "bob", detail.Reviews[0].Username)
}

func TestGetMovieDetails_UnknownMovie(t *testing.T) {
	t.Parallel()

	svc := NewMovieService(newFakeMovieRepo(), newFakeUserRepo(), newFakeMetadata())

	_, err := svc.GetMovieDetails(context.Background(), 999)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

//------------------------------------------
//------------------------------------------

func TestSubmitReview_FanOutScenario(t *testing.T) {
	t.Parallel()

	// alice has movie 42 on her watch-list, bob does not. bob reviews 42:
	// alice gains exactly one notification, bob none.
	userRepo := newFakeUserRepo()
	userRepo.addUser("alice", 42)
	userRepo.addUser("bob")
	movieRepo := newFakeMovieRepo()
	svc := NewMovieService(movieRepo, userRepo, newFakeMetadata())

	err := svc.SubmitReview(context.Background(), 42, "bob", "great film", "2024-05-01")
	require.NoError(t, err)

	require.Len(t, userRepo.users["alice"].Notifications, 1)
	notif := userRepo.users["alice"].Notifications[0]
	require.Equal(t, int64(42), notif.MovieId)
	require.Equal(t, "bob", notif.Reviewer)
	require.Equal(t, "great film", notif.Text)
	_, parseErr := time.Parse(time.RFC3339, notif.Date)
	require.NoError(t, parseErr)

	require.Empty(t, userRepo.users["bob"].Notifications)

	movie, err := movieRepo.FindById(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, movie.Reviews, 1)
	require.Equal(t, "2024-05-01", movie.Reviews[0].Date)
}

func TestSubmitReview_ReviewerExcludedCaseInsensitive(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	userRepo.addUser("bob", 42)
	svc := NewMovieService(newFakeMovieRepo(), userRepo, newFakeMetadata())

	err := svc.SubmitReview(context.Background(), 42, "BoB", "reviewing my own pick", "")
	require.NoError(t, err)
	require.Empty(t, userRepo.users["bob"].Notifications)
}

func TestSubmitReview_PartialFanOutFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	userRepo.addUser("alice", 7)
	userRepo.addUser("carol", 7)
	userRepo.addUser("dave", 7)
	userRepo.pushErrFor = map[string]error{"carol": errors.New("write failed")}
	svc := NewMovieService(newFakeMovieRepo(), userRepo, newFakeMetadata())

	err := svc.SubmitReview(context.Background(), 7, "bob", "solid", "")
	require.NoError(t, err)

	require.Len(t, userRepo.users["alice"].Notifications, 1)
	require.Len(t, userRepo.users["dave"].Notifications, 1)
	require.Empty(t, userRepo.users["carol"].Notifications)
}

func TestSubmitReview_StoreErrorAbortsBeforeFanOut(t *testing.T) {
	t.Parallel()

	userRepo := newFakeUserRepo()
	userRepo.addUser("alice", 42)
	movieRepo := newFakeMovieRepo()
	movieRepo.appendErr = errors.New("db down")
	svc := NewMovieService(movieRepo, userRepo, newFakeMetadata())

	err := svc.SubmitReview(context.Background(), 42, "bob", "great film", "")
	require.Error(t, err)
	require.Empty(t, userRepo.users["alice"].Notifications)
}
