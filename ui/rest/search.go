package rest

import (
	"time"

	"github.com/gofiber/fiber/v2"

	domainSearch "github.com/nextplot/nextplot-gw/domains/search"
	"github.com/nextplot/nextplot-gw/pkg/utils"
	"github.com/nextplot/nextplot-gw/validations"
)

type Search struct {
	Service domainSearch.ISearchUsecase
}

func InitRestSearch(app fiber.Router, service domainSearch.ISearchUsecase) Search {
	handler := Search{Service: service}

	app.Get("/api/nextplot/search", handler.Search)

	return handler
}

// Search translates a free-form question into a fixed SQL template. The
// translation is returned, never executed here.
func (h *Search) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if err := validations.ValidateSearchQuery(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ResponseData{
			Status:  fiber.StatusBadRequest,
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	}

	query := h.Service.ToSQL(q)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Search query translated",
		Results: fiber.Map{
			"ok":       true,
			"q":        q,
			"time":     time.Now().UTC().Format(time.RFC3339),
			"sql":      query.SQL,
			"bindings": query.Bindings,
			"explain":  query.Explain,
		},
	})
}
