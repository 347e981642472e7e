package main

import (
	"context"
	"log"
	"movie_tracker/api"
	"movie_tracker/configs"
	"movie_tracker/db/mongodb"
	"movie_tracker/db/redis"
	"movie_tracker/internal/client"
	"movie_tracker/internal/handler"
	"movie_tracker/internal/repository"
	"movie_tracker/internal/service"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// @title						Movie Tracker
// @version					1.0
// @description				Movie tracking service: search, watch-lists, reviews and notifications.
// @host						localhost:5000
// @BasePath					/
// @Accept						json
// @Produce					json
func main() {
	configs.LoadEnvVariables()
	if missing := configs.CheckRequiredConfigs(); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              configs.GetConfigs().SentryDns,
		Release:          configs.GetConfigs().SentryRelease,
		TracesSampleRate: 1,
		EnableTracing:    true,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	mongoDB, err := mongodb.NewDatabase()
	if err != nil {
		log.Fatalf("could not initialize mongodb database connection: %s", err)
	}
	defer mongoDB.Close()

	blacklist, err := redis.Connect()
	if err != nil {
		log.Printf("could not connect to redis, session blacklist disabled: %s", err)
		blacklist = nil
	}

	tmdbClient := client.NewTmdbClient(configs.GetConfigs().TmdbApiKey)

	userRepo := repository.NewUserRepository(mongoDB.GetDB())
	movieRepo := repository.NewMovieRepository(mongoDB.GetDB())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("could not create users indexes: %s", err)
	}
	cancel()

	userSvc := service.NewUserService(userRepo, tmdbClient, blacklist)
	movieSvc := service.NewMovieService(movieRepo, userRepo, tmdbClient)

	userHandler := handler.NewUserHandler(userSvc)
	movieHandler := handler.NewMovieHandler(movieSvc, userSvc)

	api.InitRouter(userHandler, movieHandler, mongoDB, blacklist)
	log.Fatal(api.Start("0.0.0.0:" + configs.GetConfigs().Port))
}
