package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
)

// NewApp builds the fiber app with the shared JSON codec and error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "dam-monitoring-api",
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024,
		UnescapePath:          true,
	})
}

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindValidation, apperr.KindInvalidCredentials:
		return fiber.StatusBadRequest
	case apperr.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error as {"message": ...}. Internal causes are
// logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}
	code := statusFor(ae.Kind)
	if code == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{"message": ae.Message})
}

// bind decodes the request body into v.
func bind(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 && !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// queryLimit reads ?limit=N. Missing or malformed values become 0, which the
// services treat as "use the default".
func queryLimit(c *fiber.Ctx) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}
