package handler

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/middleware"
	"suggestion-box/internal/service"
)

type AdminHandler struct {
	listingService service.ListingService
	reviewService  service.ReviewService
}

func NewAdminHandler(listingService service.ListingService, reviewService service.ReviewService) *AdminHandler {
	return &AdminHandler{
		listingService: listingService,
		reviewService:  reviewService,
	}
}

// List is the review queue: every suggestion, filterable by status, area and
// free-text query.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	filter := domain.SuggestionFilter{
		Area:  c.Query("area"),
		Query: c.Query("q"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.SuggestionStatus(strings.ToUpper(statusStr))
		if !status.IsValid() {
			return middleware.BadRequest("Unknown status filter: " + statusStr)
		}
		filter.Status = &status
	}

	params := getPaginationParams(c)

	response, err := h.listingService.Admin(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	if actorID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	suggestionID, err := uuid.Parse(c.Params("suggestionId"))
	if err != nil {
		return middleware.BadRequest("Invalid suggestion ID")
	}

	var input domain.SetStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	suggestion, err := h.reviewService.SetStatus(c.Context(), suggestionID, actorID, input.Status, input.RejectionReason)
	if err != nil {
		if errors.Is(err, service.ErrReasonRequired) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"code":    "REASON_REQUIRED",
				"message": "A rejection reason is required to reject a suggestion",
			})
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, sql.ErrNoRows) {
			return middleware.NotFound("Suggestion not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(suggestion)
}

// Delete permanently removes a suggestion. The confirm flag forces the client
// to make the destructive intent explicit.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	if actorID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	suggestionID, err := uuid.Parse(c.Params("suggestionId"))
	if err != nil {
		return middleware.BadRequest("Invalid suggestion ID")
	}

	if !c.QueryBool("confirm") {
		return middleware.BadRequest("Deletion requires confirm=true")
	}

	if err := h.reviewService.Delete(c.Context(), suggestionID, actorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return middleware.NotFound("Suggestion not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Suggestion deleted",
	})
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.listingService.Stats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	return domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
}
