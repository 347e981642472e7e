package handler

import (
	"errors"
	"movie_tracker/internal/errs"
	"movie_tracker/internal/service"
	"movie_tracker/model"
	"movie_tracker/pkg/response"
	"time"

	"github.com/gofiber/fiber/v2"
)

type IUserHandler interface {
	LoginPage(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	SignupPage(c *fiber.Ctx) error
	Signup(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
	GetWatchlist(c *fiber.Ctx) error
	GetWatched(c *fiber.Ctx) error
	GetNotifications(c *fiber.Ctx) error
	MarkNotificationSeen(c *fiber.Ctx) error
	AddToWatchlist(c *fiber.Ctx) error
	AddToWatched(c *fiber.Ctx) error
}

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

//------------------------------------------
//------------------------------------------

func (h *UserHandler) LoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

// Login godoc
//
//	@Summary		Login
//	@Description	form login, sets the session cookie and redirects to /homepage.
//	@Tags			User
//	@Param			username	formData	string	true	"username"
//	@Param			password	formData	string	true	"password"
//	@Success		302
//	@Router			/ [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.userService.Login(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			return c.Render("login", fiber.Map{"Error": response.UserPassRequired})
		}
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return c.Render("login", fiber.Map{"Error": response.UserPassNotMatch})
		}
		return c.Render("login", fiber.Map{"Error": response.ServerError})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    token,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/homepage", fiber.StatusFound)
}

func (h *UserHandler) SignupPage(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{})
}

// Signup godoc
//
//	@Summary		Signup
//	@Description	creates an account and redirects to the login page.
//	@Tags			User
//	@Param			username	formData	string	true	"username"
//	@Param			password	formData	string	true	"password, at least 6 characters"
//	@Param			email		formData	string	false	"optional email"
//	@Success		302
//	@Router			/signup [post]
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	email := c.FormValue("email")

	err := h.userService.Signup(c.Context(), username, password, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserExists) {
			return c.Render("signup", fiber.Map{"Error": response.UsernameAlreadyExist})
		}
		if errors.Is(err, errs.ErrShortPassword) {
			return c.Render("signup", fiber.Map{"Error": response.ShortPassword})
		}
		if errors.Is(err, errs.ErrInvalidEmail) {
			return c.Render("signup", fiber.Map{"Error": response.InvalidEmail})
		}
		if errors.Is(err, errs.ErrValidation) {
			return c.Render("signup", fiber.Map{"Error": response.UserPassRequired})
		}
		return c.Render("signup", fiber.Map{"Error": response.ServerError})
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout godoc
//
//	@Summary		Logout
//	@Description	blacklists the session token and clears the cookie.
//	@Tags			User
//	@Success		302
//	@Router			/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies("session", "")
	_ = h.userService.Logout(c.Context(), token)

	c.Cookie(&fiber.Cookie{
		Name:     "session",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/", fiber.StatusFound)
}

//------------------------------------------
//------------------------------------------

// GetWatchlist godoc
//
//	@Summary		Get Watchlist
//	@Description	movies on the watch-list, enriched with live metadata.
//	@Tags			Lists
//	@Success		200		{object}	model.MovieListRes
//	@Failure		401,500	{object}	response.ResponseErrorModel
//	@Router			/get_watchlist [get]
func (h *UserHandler) GetWatchlist(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	movies, err := h.userService.GetWatchlist(c.Context(), username)
	if err != nil {
		return response.ResponseError(c, response.WatchlistFetchFailed, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, model.MovieListRes{Movies: movies})
}

// GetWatched godoc
//
//	@Summary		Get Watched
//	@Description	watched movies, enriched with live metadata.
//	@Tags			Lists
//	@Success		200		{object}	model.MovieListRes
//	@Failure		401,500	{object}	response.ResponseErrorModel
//	@Router			/get_watched [get]
func (h *UserHandler) GetWatched(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	movies, err := h.userService.GetWatched(c.Context(), username)
	if err != nil {
		return response.ResponseError(c, response.WatchedFetchFailed, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithData(c, model.MovieListRes{Movies: movies})
}

// GetNotifications godoc
//
//	@Summary		Get Notifications
//	@Description	the user's notification list, newest last.
//	@Tags			Notifications
//	@Success		200		{object}	model.NotificationListRes
//	@Failure		401,500	{object}	response.ResponseErrorModel
//	@Router			/get_notifications [get]
func (h *UserHandler) GetNotifications(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	notifications, err := h.userService.GetNotifications(c.Context(), username)
	if err != nil {
		return response.ResponseError(c, response.NotificationsFetchFailed, fiber.StatusInternalServerError)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return response.ResponseOKWithData(c, model.NotificationListRes{Notifications: notifications})
}

// MarkNotificationSeen godoc
//
//	@Summary		Mark Notification Seen
//	@Description	removes the notification at the given index.
//	@Tags			Notifications
//	@Param			body	body		markNotificationSeenReq	true	"notification index"
//	@Success		200		{object}	response.ResponseMessageModel
//	@Failure		400,401,404	{object}	response.ResponseErrorModel
//	@Router			/mark_notification_seen [post]
func (h *UserHandler) MarkNotificationSeen(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	var req markNotificationSeenReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if req.NotificationIndex == nil {
		return response.ResponseError(c, response.NotificationIndexRequired, fiber.StatusBadRequest)
	}

	err := h.userService.MarkNotificationSeen(c.Context(), username, *req.NotificationIndex)
	if err != nil {
		if errors.Is(err, errs.ErrNoNotifications) || errors.Is(err, errs.ErrNotFound) {
			return response.ResponseError(c, response.NotificationsNotFound, fiber.StatusNotFound)
		}
		if errors.Is(err, errs.ErrBadIndex) {
			return response.ResponseError(c, response.InvalidNotificationIndex, fiber.StatusBadRequest)
		}
		return response.ResponseError(c, response.NotificationSeenFailed, fiber.StatusInternalServerError)
	}
	return response.ResponseOKWithMessage(c, "Notification marked as seen")
}

//------------------------------------------
//------------------------------------------

// AddToWatchlist godoc
//
//	@Summary		Add To Watchlist
//	@Description	adds the movie to the user's watch-list.
//	@Tags			Lists
//	@Param			body	body		movieIdReq	true	"movie id"
//	@Success		200		{object}	response.ResponseMessageModel
//	@Failure		400,401,500	{object}	response.ResponseErrorModel
//	@Router			/add_to_watchlist [post]
func (h *UserHandler) AddToWatchlist(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	var req movieIdReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if req.MovieId == 0 {
		return response.ResponseError(c, response.MovieIdRequired, fiber.StatusBadRequest)
	}

	added, err := h.userService.AddToWatchlist(c.Context(), username, req.MovieId)
	if err != nil {
		return response.ResponseError(c, response.WatchlistAddFailed, fiber.StatusInternalServerError)
	}
	if added {
		return response.ResponseOKWithMessage(c, "Movie added to your watchlist!")
	}
	return response.ResponseOKWithMessage(c, "Movie is already in your watchlist.")
}

// AddToWatched godoc
//
//	@Summary		Add To Watched
//	@Description	marks the movie watched and evicts it from the watch-list.
//	@Tags			Lists
//	@Param			body	body		movieIdReq	true	"movie id"
//	@Success		200		{object}	response.ResponseMessageModel
//	@Failure		400,401,500	{object}	response.ResponseErrorModel
//	@Router			/add_to_watched [post]
func (h *UserHandler) AddToWatched(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	var req movieIdReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}
	if req.MovieId == 0 {
		return response.ResponseError(c, response.MovieIdRequired, fiber.StatusBadRequest)
	}

	added, err := h.userService.AddToWatched(c.Context(), username, req.MovieId)
	if err != nil {
		return response.ResponseError(c, response.WatchedAddFailed, fiber.StatusInternalServerError)
	}
	if added {
		return response.ResponseOKWithMessage(c, "Movie marked as watched and removed from watch later!")
	}
	return response.ResponseOKWithMessage(c, "Movie is already in your watched list.")
}

//------------------------------------------
//------------------------------------------

type markNotificationSeenReq struct {
	NotificationIndex *int `json:"notificationIndex"`
}

type movieIdReq struct {
	MovieId int64 `json:"movieId"`
}
