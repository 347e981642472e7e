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

type IMovieRepository interface {
	FindByQuery(ctx context.Context, query string) ([]model.Movie, error)
	FindById(ctx context.Context, movieId int64) (*model.Movie, error)
	SampleMovies(ctx context.Context, size int) ([]model.Movie, error)
	InsertSearchResults(ctx context.Context, movies []model.Movie) error
	AppendReview(ctx context.Context, movieId int64, review model.Review) error
}

type MovieRepository struct {
	mongodb *mongo.Database
}

func NewMovieRepository(mongodb *mongo.Database) *MovieRepository {
	return &MovieRepository{mongodb: mongodb}
}

func (r *MovieRepository) movies() *mongo.Collection {
	return r.mongodb.Collection("movies")
}

//------------------------------------------
//------------------------------------------

// FindByQuery returns the cached search results previously stored for this
// normalized query string. The cache is permanent, there is no freshness
// check or expiry.
func (r *MovieRepository) FindByQuery(ctx context.Context, query string) ([]model.Movie, error) {
	cursor, err := r.movies().Find(ctx,
		bson.D{{Key: "user_query", Value: query}},
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var movies []model.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepository) FindById(ctx context.Context, movieId int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.movies().
		FindOne(ctx,
			bson.D{{Key: "id", Value: movieId}},
			options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 0}})).
		Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// SampleMovies returns up to size random cached movies for the homepage.
func (r *MovieRepository) SampleMovies(ctx context.Context, size int) ([]model.Movie, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}}}},
	}
	cursor, err := r.movies().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var movies []model.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepository) InsertSearchResults(ctx context.Context, movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	docs := make([]interface{}, len(movies))
	for i := range movies {
		docs[i] = movies[i]
	}
	_, err := r.movies().InsertMany(ctx, docs)
	return err
}

// AppendReview pushes the review onto the movie document, creating the
// document when the movie was never cached by a search.
func (r *MovieRepository) AppendReview(ctx context.Context, movieId int64, review model.Review) error {
	_, err := r.movies().UpdateOne(ctx,
		bson.D{{Key: "id", Value: movieId}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}}},
		options.Update().SetUpsert(true),
	)
	return err
}
