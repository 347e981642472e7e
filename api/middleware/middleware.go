package middleware

import (
	"movie_tracker/db/redis"
	"movie_tracker/pkg/response"
	"movie_tracker/util"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const sessionBlacklistPrefix = "jwtKey:"

// SessionAuth verifies the session cookie and stores the normalized username
// in c.Locals("username"). Page routes redirect back to the login page on
// failure, JSON routes get a 401 envelope. A nil blacklist client disables
// the logout blacklist check.
func SessionAuth(blacklist *redis.Client, redirectToLogin bool) fiber.Handler {
	fail := func(c *fiber.Ctx, message string) error {
		if redirectToLogin {
			return c.Redirect("/", fiber.StatusFound)
		}
		return response.ResponseError(c, message, fiber.StatusUnauthorized)
	}

	return func(c *fiber.Ctx) error {
		token := c.Cookies("session", "")
		if token == "" {
			return fail(c, response.NotLoggedIn)
		}

		if blacklist != nil {
			result, err := blacklist.Get(c.Context(), sessionBlacklistPrefix+token)
			if err == nil && result != "" {
				return fail(c, response.SessionBlacklisted)
			}
		}

		_, claims, err := util.VerifySessionToken(token)
		if err != nil || claims == nil || claims.Username == "" {
			return fail(c, response.InvalidSession)
		}

		c.Locals("username", strings.ToLower(claims.Username))
		c.Locals("sessionToken", token)
		return c.Next()
	}
}

var (
	LocalhostRegex = regexp.MustCompile(`(?i)^(https?://)?localhost(:\d{4})?$`)
)
