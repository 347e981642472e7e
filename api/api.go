package api

import (
	"context"
	"errors"
	"fmt"
	"movie_tracker/api/middleware"
	"movie_tracker/configs"
	"movie_tracker/db/redis"
	"movie_tracker/internal/handler"
	"movie_tracker/pkg/response"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
)

var router *fiber.App

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

func InitRouter(userHandler *handler.UserHandler, movieHandler *handler.MovieHandler, db Pinger, blacklist *redis.Client) {
	var defaultErrorHandler = func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if !strings.Contains(err.Error(), "/favicon.ico") && code >= 500 {
			fmt.Println(err.Error())
		}

		return response.ResponseError(c, "Internal Error", code)
	}

	engine := html.New("./templates", ".tpl")
	router = fiber.New(fiber.Config{
		UnescapePath: true,
		ErrorHandler: defaultErrorHandler,
		Views:        engine,
	})

	router.Use(helmet.New())
	router.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return middleware.LocalhostRegex.MatchString(origin) ||
				slices.Index(configs.GetConfigs().CorsAllowedOrigins, origin) != -1
		},
		AllowCredentials: true,
	}))
	router.Use(recover.New())
	router.Use(compress.New())

	router.Use(fibersentry.New(fibersentry.Config{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	pageAuth := middleware.SessionAuth(blacklist, true)
	jsonAuth := middleware.SessionAuth(blacklist, false)

	router.Get("/", userHandler.LoginPage)
	router.Post("/", userHandler.Login)
	router.Get("/signup", userHandler.SignupPage)
	router.Post("/signup", userHandler.Signup)
	router.Post("/logout", userHandler.Logout)

	router.Get("/homepage", pageAuth, movieHandler.HomePage)
	router.Post("/homepage", pageAuth, movieHandler.HomePage)

	router.Get("/get_watchlist", jsonAuth, userHandler.GetWatchlist)
	router.Get("/get_watched", jsonAuth, userHandler.GetWatched)
	router.Get("/get_notifications", jsonAuth, userHandler.GetNotifications)
	router.Post("/mark_notification_seen", jsonAuth, userHandler.MarkNotificationSeen)
	router.Post("/add_to_watchlist", jsonAuth, userHandler.AddToWatchlist)
	router.Post("/add_to_watched", jsonAuth, userHandler.AddToWatched)
	router.Post("/submit_reviews", jsonAuth, movieHandler.SubmitReview)

	router.Get("/movie/:movieId", movieHandler.GetMovieDetails)

	router.Get("/health", HealthCheck(db))
	router.Get("/metrics", monitor.New())
}

func Start(addr string) error {
	return router.Listen(addr)
}

// HealthCheck godoc
//
//	@Summary		Show the status of server.
//	@Description	pings the database and reports readiness.
//	@Tags			System
//	@Success		200	{object}	map[string]interface{}
//	@Failure		503	{object}	map[string]interface{}
//	@Router			/health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
