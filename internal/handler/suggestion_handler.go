package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/middleware"
	"suggestion-box/internal/service"
)

type SuggestionHandler struct {
	suggestionService service.SuggestionService
	listingService    service.ListingService
	voteService       service.VoteService
}

func NewSuggestionHandler(suggestionService service.SuggestionService, listingService service.ListingService, voteService service.VoteService) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionService: suggestionService,
		listingService:    listingService,
		voteService:       voteService,
	}
}

// Submit accepts a multipart form so the optional attachment can ride along
// with the suggestion fields in a single request.
func (h *SuggestionHandler) Submit(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	input := domain.SubmitSuggestionInput{
		Name:           formValuePtr(c, "name"),
		EmployeeID:     formValuePtr(c, "employee_id"),
		Contact:        formValuePtr(c, "contact"),
		Area:           formValuePtr(c, "area"),
		Problem:        c.FormValue("problem"),
		Suggestion:     formValuePtr(c, "suggestion"),
		InvolvementHow: formValuePtr(c, "involvement_how"),
		Benefits:       formValuePtr(c, "benefits"),
		Involvement:    formBool(c, "involvement"),
		Anonymous:      formBool(c, "anonymous"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		input.Topics = form.Value["topics"]
	}

	if key := c.Get("Idempotency-Key"); key != "" {
		input.IdempotencyKey = &key
	}

	var attachment *service.AttachmentUpload
	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		if fileHeader.Size > service.MaxAttachmentSize {
			return middleware.UnprocessableEntity("Attachment exceeds the 25MB limit")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return middleware.BadRequest("Failed to read attachment")
		}
		defer file.Close()

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		attachment = &service.AttachmentUpload{
			FileName: fileHeader.Filename,
			Size:     fileHeader.Size,
			MimeType: mimeType,
			Reader:   file,
		}
	}

	suggestion, err := h.suggestionService.Submit(c.Context(), userID, input, attachment)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return middleware.UnprocessableEntity(err.Error())
		}
		if errors.Is(err, service.ErrUpload) {
			return middleware.BadGateway("Attachment upload failed, please try again")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(suggestion)
}

// ListMine returns every suggestion the caller has submitted, anonymous ones
// included.
func (h *SuggestionHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	suggestions, err := h.listingService.Mine(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

func (h *SuggestionHandler) ToggleVote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	suggestionID, err := uuid.Parse(c.Params("suggestionId"))
	if err != nil {
		return middleware.BadRequest("Invalid suggestion ID")
	}

	result, err := h.voteService.Toggle(c.Context(), suggestionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return middleware.NotFound("Suggestion not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func formValuePtr(c *fiber.Ctx, name string) *string {
	if v := c.FormValue(name); v != "" {
		return &v
	}
	return nil
}

func formBool(c *fiber.Ctx, name string) bool {
	switch c.FormValue(name) {
	case "true", "yes", "1":
		return true
	}
	return false
}
