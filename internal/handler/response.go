package handler

import (
	"log/slog"

	"go-inventory-ledger/internal/payload"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:   fiber.StatusBadRequest,
	service.KindReference:    fiber.StatusBadRequest,
	service.KindConflict:     fiber.StatusConflict,
	service.KindNotFound:     fiber.StatusNotFound,
	service.KindPersistence:  fiber.StatusInternalServerError,
	service.KindUnauthorized: fiber.StatusUnauthorized,
	service.KindForbidden:    fiber.StatusForbidden,
}

// respondError writes the client-safe message for err. Store faults are
// logged with their cause and never echoed back.
func respondError(c *fiber.Ctx, err error) error {
	kind := service.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(status).JSON(fiber.Map{"message": service.PublicMessage(err)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
}

// parseBody decodes the request body into presence-tracking fields. On
// failure it has already answered 400 and ok is false.
func parseBody(c *fiber.Ctx) (f payload.Fields, ok bool, err error) {
	f, perr := payload.Parse(c.Body())
	if perr != nil {
		return nil, false, badRequest(c, "Request body must be a JSON object")
	}
	return f, true, nil
}

// paramID reads the numeric :id route parameter. On failure it has already
// answered 400 and ok is false.
func paramID(c *fiber.Ctx) (id uint, ok bool, err error) {
	n, perr := c.ParamsInt("id")
	if perr != nil || n <= 0 {
		return 0, false, badRequest(c, "Invalid id")
	}
	return uint(n), true, nil
}

// deleted answers a successful delete with 204. fasthttp discards the
// message body for that status, so clients only see the status line.
func deleted(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNoContent).JSON(fiber.Map{"message": msg})
}
