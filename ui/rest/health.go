package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nextplot/nextplot-gw/core/config"
	"github.com/nextplot/nextplot-gw/pkg/utils"
)

type Health struct {
	Config *config.Config
}

func InitRestHealth(app fiber.Router, cfg *config.Config) Health {
	handler := Health{Config: cfg}

	app.Get("/healthz", handler.Healthz)
	app.Get("/api/health", handler.GetStatus)

	return handler
}

// Healthz is the bare liveness probe.
func (h *Health) Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStatus reports whether the external credentials are configured, without
// leaking their values.
func (h *Health) GetStatus(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: fiber.Map{
			"status":    "healthy",
			"service":   "nextplot-gw",
			"version":   h.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"env": fiber.Map{
				"supabase": configuredLabel(h.Config.Supabase.URL),
				"line":     configuredLabel(h.Config.Line.AccessToken),
			},
		},
	})
}

func configuredLabel(v string) string {
	if v == "" {
		return "missing"
	}
	return "configured"
}
