package handler

import (
	"errors"
	"movie_tracker/internal/errs"
	"movie_tracker/internal/service"
	"movie_tracker/model"
	"movie_tracker/pkg/response"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	homepageSampleSize    = 20
	emptySearchSampleSize = 10
)

type IMovieHandler interface {
	HomePage(c *fiber.Ctx) error
	GetMovieDetails(c *fiber.Ctx) error
	SubmitReview(c *fiber.Ctx) error
}

type MovieHandler struct {
	movieService service.IMovieService
	userService  service.IUserService
}

func NewMovieHandler(movieService service.IMovieService, userService service.IUserService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		userService:  userService,
	}
}

//------------------------------------------
//------------------------------------------

// HomePage godoc
//
//	@Summary		Homepage
//	@Description	renders cached movies; a POST with a query field searches.
//	@Tags			Movies
//	@Param			query	formData	string	false	"search query"
//	@Success		200
//	@Router			/homepage [get]
func (h *MovieHandler) HomePage(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	counts, err := h.userService.GetCounts(c.Context(), username)
	if err != nil {
		counts = &model.UserCounts{}
	}

	var movies []model.Movie
	if c.Method() == fiber.MethodPost {
		query := strings.TrimSpace(c.FormValue("query"))
		if query == "" {
			movies, err = h.movieService.Sample(c.Context(), emptySearchSampleSize)
		} else {
			movies, err = h.movieService.Search(c.Context(), query)
		}
	} else {
		movies, err = h.movieService.Sample(c.Context(), homepageSampleSize)
	}
	if err != nil {
		movies = []model.Movie{}
	}

	return c.Render("homepage", fiber.Map{
		"Username":           strings.ToUpper(username),
		"Movies":             movies,
		"WatchlistCount":     counts.WatchList,
		"WatchedCount":       counts.Watched,
		"NotificationsCount": counts.Notifications,
	})
}

// GetMovieDetails godoc
//
//	@Summary		Movie Details
//	@Description	detailed metadata plus stored reviews for the movie.
//	@Tags			Movies
//	@Param			movieId	path		int	true	"movieId"
//	@Success		200		{object}	model.MovieDetail
//	@Failure		400,404	{object}	response.ResponseErrorModel
//	@Router			/movie/:movieId [get]
func (h *MovieHandler) GetMovieDetails(c *fiber.Ctx) error {
	movieId, err := c.ParamsInt("movieId", 0)
	if err != nil || movieId <= 0 {
		return response.ResponseError(c, response.MovieIdRequired, fiber.StatusBadRequest)
	}

	detail, err := h.movieService.GetMovieDetails(c.Context(), int64(movieId))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return response.ResponseError(c, response.MovieNotFound, fiber.StatusNotFound)
		}
		return response.ResponseError(c, response.ServerError, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, detail)
}

// SubmitReview godoc
//
//	@Summary		Submit Review
//	@Description	appends the review and notifies users watching the movie.
//	@Tags			Movies
//	@Param			body	body		submitReviewReq	true	"review"
//	@Success		200		{object}	response.ResponseMessageModel
//	@Failure		400,401,500	{object}	response.ResponseErrorModel
//	@Router			/submit_reviews [post]
func (h *MovieHandler) SubmitReview(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	var req submitReviewReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	req.ReviewText = strings.TrimSpace(req.ReviewText)
	if req.MovieId == 0 || req.ReviewText == "" {
		return response.ResponseError(c, response.ReviewBodyRequired, fiber.StatusBadRequest)
	}

	err := h.movieService.SubmitReview(c.Context(), req.MovieId, username, req.ReviewText, req.Date)
	if err != nil {
		return response.ResponseError(c, response.ReviewSubmitFailed, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithMessage(c, "Review submitted successfully!")
}

type submitReviewReq struct {
	MovieId    int64  `json:"movieId"`
	ReviewText string `json:"reviewText"`
	Date       string `json:"date"`
}
