package middleware

import (
	"strings"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser            = "user"
	localUserID          = "user_id"
	localPermissionLevel = "permissions_level"
)

// sessionToken reads the session cookie first and falls back to a Bearer header.
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireAuth resolves the session token to a user and stores it in the request locals.
func RequireAuth(auth service.AuthService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Authenticate(c.UserContext(), sessionToken(c, cookieName))
		if err != nil {
			status := fiber.StatusUnauthorized
			if service.KindOf(err) == service.KindPersistence {
				status = fiber.StatusInternalServerError
			}
			return c.Status(status).JSON(fiber.Map{"message": service.PublicMessage(err)})
		}

		c.Locals(localUser, user)
		c.Locals(localUserID, user.ID)
		c.Locals(localPermissionLevel, user.Auth.PermissionsLevel)
		return c.Next()
	}
}

// RequirePermission admits users whose permission level is at least level.
func RequirePermission(level int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals(localPermissionLevel).(int)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
		}
		if current < level {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden: requires " + model.PermissionName(level) + " permission",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localUser).(*model.User)
	return user
}
