package handler

import (
	"github.com/gofiber/fiber/v2"

	"suggestion-box/internal/service"
)

type PublicHandler struct {
	listingService service.ListingService
}

func NewPublicHandler(listingService service.ListingService) *PublicHandler {
	return &PublicHandler{listingService: listingService}
}

// ListRecent serves the home-page view: the newest non-anonymous
// suggestions, capped to a small count.
func (h *PublicHandler) ListRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)

	suggestions, err := h.listingService.Public(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}
