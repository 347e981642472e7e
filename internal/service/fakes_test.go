package service

import (
	"context"
	"movie_tracker/internal/client"
	"movie_tracker/internal/errs"
	"movie_tracker/internal/repository"
	"movie_tracker/model"
	"slices"
)

type fakeUserRepo struct {
	users      map[string]*model.User
	pushErrFor map[string]error
	getErr     error
}

var _ repository.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) addUser(username string, watchList ...int64) *model.User {
	u := &model.User{
		Username:      username,
		Watched:       []int64{},
		WatchList:     append([]int64{}, watchList...),
		Notifications: []model.Notification{},
	}
	f.users[username] = u
	return u
}

func (f *fakeUserRepo) EnsureIndexes(context.Context) error { return nil }

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if _, exists := f.users[user.Username]; exists {
		return errs.ErrUserExists
	}
	cpy := *user
	f.users[user.Username] = &cpy
	return nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUserRepo) GetCounts(_ context.Context, username string) (*model.UserCounts, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &model.UserCounts{
		Watched:       len(u.Watched),
		WatchList:     len(u.WatchList),
		Notifications: len(u.Notifications),
	}, nil
}

func (f *fakeUserRepo) GetWatchlist(_ context.Context, username string) ([]int64, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]int64{}, u.WatchList...), nil
}

func (f *fakeUserRepo) GetWatched(_ context.Context, username string) ([]int64, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]int64{}, u.Watched...), nil
}

func (f *fakeUserRepo) GetNotifications(_ context.Context, username string) ([]model.Notification, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return append([]model.Notification{}, u.Notifications...), nil
}

func (f *fakeUserRepo) AddToWatchlist(_ context.Context, username string, movieId int64) (bool, error) {
	u, ok := f.users[username]
	if !ok {
		return false, nil
	}
	if slices.Contains(u.WatchList, movieId) {
		return false, nil
	}
	u.WatchList = append(u.WatchList, movieId)
	return true, nil
}

func (f *fakeUserRepo) AddToWatched(_ context.Context, username string, movieId int64) (bool, error) {
	u, ok := f.users[username]
	if !ok {
		return false, nil
	}
	added := false
	if !slices.Contains(u.Watched, movieId) {
		u.Watched = append(u.Watched, movieId)
		added = true
	}
	u.WatchList = slices.DeleteFunc(u.WatchList, func(id int64) bool { return id == movieId })
	return added, nil
}

func (f *fakeUserRepo) FindWatchers(_ context.Context, movieId int64) ([]string, error) {
	watchers := make([]string, 0)
	for name, u := range f.users {
		if slices.Contains(u.WatchList, movieId) {
			watchers = append(watchers, name)
		}
	}
	return watchers, nil
}

func (f *fakeUserRepo) PushNotification(_ context.Context, username string, notification model.Notification) error {
	if err, blocked := f.pushErrFor[username]; blocked {
		return err
	}
	u, ok := f.users[username]
	if !ok {
		return nil
	}
	u.Notifications = append(u.Notifications, notification)
	return nil
}

func (f *fakeUserRepo) SetNotifications(_ context.Context, username string, notifications []model.Notification) error {
	u, ok := f.users[username]
	if !ok {
		return errs.ErrNotFound
	}
	u.Notifications = append([]model.Notification{}, notifications...)
	return nil
}

//------------------------------------------
//------------------------------------------

type fakeMovieRepo struct {
	byQuery map[string][]model.Movie
	byId    map[int64]*model.Movie

	findErr   error
	insertErr error
	appendErr error
}

var _ repository.IMovieRepository = (*fakeMovieRepo)(nil)

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{
		byQuery: map[string][]model.Movie{},
		byId:    map[int64]*model.Movie{},
	}
}

func (f *fakeMovieRepo) FindByQuery(_ context.Context, query string) ([]model.Movie, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return append([]model.Movie{}, f.byQuery[query]...), nil
}

func (f *fakeMovieRepo) FindById(_ context.Context, movieId int64) (*model.Movie, error) {
	m, ok := f.byId[movieId]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *m
	return &cpy, nil
}

func (f *fakeMovieRepo) SampleMovies(_ context.Context, size int) ([]model.Movie, error) {
	movies := make([]model.Movie, 0, size)
	for _, m := range f.byId {
		if len(movies) == size {
			break
		}
		movies = append(movies, *m)
	}
	return movies, nil
}

func (f *fakeMovieRepo) InsertSearchResults(_ context.Context, movies []model.Movie) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for i := range movies {
		m := movies[i]
		f.byQuery[m.UserQuery] = append(f.byQuery[m.UserQuery], m)
		f.byId[m.Id] = &m
	}
	return nil
}

func (f *fakeMovieRepo) AppendReview(_ context.Context, movieId int64, review model.Review) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	m, ok := f.byId[movieId]
	if !ok {
		m = &model.Movie{Id: movieId}
		f.byId[movieId] = m
	}
	m.Reviews = append(m.Reviews, review)
	return nil
}

//------------------------------------------
//------------------------------------------

type fakeMetadata struct {
	searchResults map[string][]model.Movie
	summaries     map[int64]*model.MovieSummary
	details       map[int64]*model.MovieDetail

	searchCalls  int
	summaryCalls int

	searchErr error
}

var _ client.IMetadataClient = (*fakeMetadata)(nil)

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		searchResults: map[string][]model.Movie{},
		summaries:     map[int64]*model.MovieSummary{},
		details:       map[int64]*model.MovieDetail{},
	}
}

func (f *fakeMetadata) SearchMovie(_ context.Context, query string) ([]model.Movie, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return append([]model.Movie{}, f.searchResults[query]...), nil
}

func (f *fakeMetadata) GetMovieSummary(_ context.Context, movieId int64) (*model.MovieSummary, error) {
	f.summaryCalls++
	s, ok := f.summaries[movieId]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *s
	return &cpy, nil
}

func (f *fakeMetadata) GetMovieDetails(_ context.Context, movieId int64) (*model.MovieDetail, error) {
	d, ok := f.details[movieId]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *d
	return &cpy, nil
}
