package service

import (
	"context"
	"errors"
	"fmt"
	"movie_tracker/db/redis"
	"movie_tracker/internal/client"
	"movie_tracker/internal/errs"
	"movie_tracker/internal/repository"
	"movie_tracker/model"
	errorHandler "movie_tracker/pkg/error"
	"movie_tracker/util"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

const sessionBlacklistPrefix = "jwtKey:"

type IUserService interface {
	Signup(ctx context.Context, username string, password string, email string) error
	Login(ctx context.Context, username string, password string) (string, error)
	Logout(ctx context.Context, token string) error
	GetCounts(ctx context.Context, username string) (*model.UserCounts, error)
	GetWatchlist(ctx context.Context, username string) ([]model.MovieSummary, error)
	GetWatched(ctx context.Context, username string) ([]model.MovieSummary, error)
	GetNotifications(ctx context.Context, username string) ([]model.Notification, error)
	MarkNotificationSeen(ctx context.Context, username string, index int) error
	AddToWatchlist(ctx context.Context, username string, movieId int64) (bool, error)
	AddToWatched(ctx context.Context, username string, movieId int64) (bool, error)
}

type UserService struct {
	userRepo  repository.IUserRepository
	metadata  client.IMetadataClient
	blacklist *redis.Client
}

func NewUserService(userRepo repository.IUserRepository, metadata client.IMetadataClient, blacklist *redis.Client) *UserService {
	return &UserService{
		userRepo:  userRepo,
		metadata:  metadata,
		blacklist: blacklist,
	}
}

//------------------------------------------
//------------------------------------------

func (s *UserService) Signup(ctx context.Context, username string, password string, email string) error {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return errs.ErrShortPassword
	}
	if email != "" {
		if err := checkmail.ValidateFormat(email); err != nil {
			return errs.ErrInvalidEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:      username,
		PasswordHash:  hash,
		Email:         email,
		Watched:       []int64{},
		WatchList:     []int64{},
		Notifications: []model.Notification{},
	}
	return s.userRepo.CreateUser(ctx, user)
}

// Login verifies credentials and returns a signed session token. Unknown
// user and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username string, password string) (string, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", errs.ErrValidation)
	}

	user, err := s.userRepo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", errs.ErrInvalidCredentials
	}

	return util.CreateSessionToken(username)
}

// Logout blacklists the session token until it would have expired. With no
// redis configured this is a no-op and the cookie removal is all we have.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if s.blacklist == nil || token == "" {
		return nil
	}

	ttl := time.Hour * 24
	if _, claims, err := util.VerifySessionToken(token); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	err := s.blacklist.Set(ctx, sessionBlacklistPrefix+token, "blocked", ttl)
	if err != nil {
		errorHandler.SaveError(fmt.Sprintf("Redis error on blacklisting session: %v", err), err)
	}
	return err
}

//------------------------------------------
//------------------------------------------

func (s *UserService) GetCounts(ctx context.Context, username string) (*model.UserCounts, error) {
	return s.userRepo.GetCounts(ctx, username)
}

func (s *UserService) GetWatchlist(ctx context.Context, username string) ([]model.MovieSummary, error) {
	ids, err := s.userRepo.GetWatchlist(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, ids), nil
}

func (s *UserService) GetWatched(ctx context.Context, username string) ([]model.MovieSummary, error) {
	ids, err := s.userRepo.GetWatched(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, ids), nil
}

// enrich resolves each movie id against the metadata provider. Entries the
// provider cannot resolve right now are skipped, not failed.
func (s *UserService) enrich(ctx context.Context, movieIds []int64) []model.MovieSummary {
	movies := make([]model.MovieSummary, 0, len(movieIds))
	for _, id := range movieIds {
		summary, err := s.metadata.GetMovieSummary(ctx, id)
		if err != nil {
			errorHandler.SaveError(fmt.Sprintf("Error fetching movie %d: %v", id, err), err)
			continue
		}
		movies = append(movies, *summary)
	}
	return movies
}

func (s *UserService) GetNotifications(ctx context.Context, username string) ([]model.Notification, error) {
	return s.userRepo.GetNotifications(ctx, username)
}

// MarkNotificationSeen removes the notification at the given position. The
// read and the write are not atomic: a fan-out push landing in between can
// shift indices, which is accepted behavior.
func (s *UserService) MarkNotificationSeen(ctx context.Context, username string, index int) error {
	notifications, err := s.userRepo.GetNotifications(ctx, username)
	if err != nil {
		return err
	}
	if len(notifications) == 0 {
		return errs.ErrNoNotifications
	}
	if index < 0 || index >= len(notifications) {
		return errs.ErrBadIndex
	}

	updated := make([]model.Notification, 0, len(notifications)-1)
	updated = append(updated, notifications[:index]...)
	updated = append(updated, notifications[index+1:]...)
	return s.userRepo.SetNotifications(ctx, username, updated)
}

//------------------------------------------
//------------------------------------------

func (s *UserService) AddToWatchlist(ctx context.Context, username string, movieId int64) (bool, error) {
	return s.userRepo.AddToWatchlist(ctx, username, movieId)
}

func (s *UserService) AddToWatched(ctx context.Context, username string, movieId int64) (bool, error) {
	return s.userRepo.AddToWatched(ctx, username, movieId)
}

//------------------------------------------
//------------------------------------------

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
