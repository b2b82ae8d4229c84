package routes

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const methodOverrideHeader = "X-HTTP-Method-Override"

// methodOverride routes a POST carrying _method (header, JSON field or form
// field) as PUT, PATCH or DELETE. It must be registered before any route.
func methodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		override := c.Get(methodOverrideHeader)
		if override == "" {
			if isJSON(c) {
				var probe struct {
					Method string `json:"_method"`
				}
				if err := json.Unmarshal(c.Body(), &probe); err == nil {
					override = probe.Method
				}
			} else if isForm(c) {
				override = c.FormValue("_method")
			}
		}

		switch method := strings.ToUpper(strings.TrimSpace(override)); method {
		case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			c.Method(method)
		}
		return c.Next()
	}
}

func requestLogger(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		entry := logger.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"request_id": c.Locals("requestid"),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("Request completed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
		return err
	}
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON)
}

func isForm(c *fiber.Ctx) bool {
	ct := string(c.Request().Header.ContentType())
	return strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm)
}
