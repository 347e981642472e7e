package repository

import (
	"context"
	"errors"
	"movie_tracker/internal/errs"
	"movie_tracker/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IUserRepository interface {
	EnsureIndexes(ctx context.Context) error
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	GetCounts(ctx context.Context, username string) (*model.UserCounts, error)
	GetWatchlist(ctx context.Context, username string) ([]int64, error)
	GetWatched(ctx context.Context, username string) ([]int64, error)
	GetNotifications(ctx context.Context, username string) ([]model.Notification, error)
	AddToWatchlist(ctx context.Context, username string, movieId int64) (bool, error)
	AddToWatched(ctx context.Context, username string, movieId int64) (bool, error)
	FindWatchers(ctx context.Context, movieId int64) ([]string, error)
	PushNotification(ctx context.Context, username string, notification model.Notification) error
	SetNotifications(ctx context.Context, username string, notifications []model.Notification) error
}

type UserRepository struct {
	mongodb *mongo.Database
}

func NewUserRepository(mongodb *mongo.Database) *UserRepository {
	return &UserRepository{mongodb: mongodb}
}

func (r *UserRepository) users() *mongo.Collection {
	return r.mongodb.Collection("users")
}

//------------------------------------------
//------------------------------------------

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrUserExists
	}
	return err
}

func (r *UserRepository) GetUser(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.users().
		FindOne(ctx, bson.D{{Key: "username", Value: username}}).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetCounts(ctx context.Context, username string) (*model.UserCounts, error) {
	user, err := r.listsProjection(ctx, username, "watched", "watch_list", "notifications")
	if err != nil {
		return nil, err
	}
	return &model.UserCounts{
		Watched:       len(user.Watched),
		WatchList:     len(user.WatchList),
		Notifications: len(user.Notifications),
	}, nil
}

func (r *UserRepository) GetWatchlist(ctx context.Context, username string) ([]int64, error) {
	user, err := r.listsProjection(ctx, username, "watch_list")
	if err != nil {
		return nil, err
	}
	return user.WatchList, nil
}

func (r *UserRepository) GetWatched(ctx context.Context, username string) ([]int64, error) {
	user, err := r.listsProjection(ctx, username, "watched")
	if err != nil {
		return nil, err
	}
	return user.Watched, nil
}

func (r *UserRepository) GetNotifications(ctx context.Context, username string) ([]model.Notification, error) {
	user, err := r.listsProjection(ctx, username, "notifications")
	if err != nil {
		return nil, err
	}
	return user.Notifications, nil
}

func (r *UserRepository) listsProjection(ctx context.Context, username string, fields ...string) (*model.User, error) {
	projection := bson.D{{Key: "_id", Value: 0}}
	for _, field := range fields {
		projection = append(projection, bson.E{Key: field, Value: 1})
	}

	var user model.User
	err := r.users().
		FindOne(ctx,
			bson.D{{Key: "username", Value: username}},
			options.FindOne().SetProjection(projection)).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

//------------------------------------------
//------------------------------------------

func (r *UserRepository) AddToWatchlist(ctx context.Context, username string, movieId int64) (bool, error) {
	res, err := r.users().UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "watch_list", Value: movieId}}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AddToWatched also evicts the movie from the watch-list, which is the only
// place the watched/watch-list disjointness is enforced.
func (r *UserRepository) AddToWatched(ctx context.Context, username string, movieId int64) (bool, error) {
	res, err := r.users().UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "watched", Value: movieId}}}},
	)
	if err != nil {
		return false, err
	}

	_, err = r.users().UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "watch_list", Value: movieId}}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

//------------------------------------------
//------------------------------------------

func (r *UserRepository) FindWatchers(ctx context.Context, movieId int64) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 0},
		{Key: "username", Value: 1},
	})
	cursor, err := r.users().Find(ctx, bson.D{{Key: "watch_list", Value: movieId}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Username string `bson:"username"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(results))
	for _, res := range results {
		usernames = append(usernames, res.Username)
	}
	return usernames, nil
}

func (r *UserRepository) PushNotification(ctx context.Context, username string, notification model.Notification) error {
	_, err := r.users().UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "notifications", Value: notification}}}},
	)
	return err
}

// SetNotifications overwrites the whole notifications array. Removal by index
// is a read-modify-write with no mutual exclusion against a concurrent
// fan-out push; the resulting index shift is accepted behavior.
func (r *UserRepository) SetNotifications(ctx context.Context, username string, notifications []model.Notification) error {
	_, err := r.users().UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "notifications", Value: notifications}}}},
	)
	return err
}
