package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/metrics"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

const (
	localUserID = "userID"
	localRole   = "role"
)

// requestLogger logs each request and records it in the API metrics.
func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	status := c.Response().StatusCode()
	elapsed := time.Since(start)

	route := c.Route().Path
	metrics.RecordAPIRequest(c.Method(), route, status, elapsed)
	log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", elapsed).
		Msg("request")
	return nil
}

// protect requires a valid bearer access token and stores its claims in locals.
func protect(identity *service.IdentityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return apperr.Unauthenticated("Not authorized, no token")
		}
		claims, err := identity.Authenticate(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		c.Locals(localUserID, claims.ID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

func requireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual, _ := c.Locals(localRole).(domain.Role)
		if auth.RequireRole(actual, role) == auth.Deny {
			return apperr.Forbidden("Access denied")
		}
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}
