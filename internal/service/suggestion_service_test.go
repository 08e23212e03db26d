package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"suggestion-box/internal/config"
	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTAccessExpiry:     15 * time.Minute,
		JWTRefreshExpiry:    time.Hour,
		MinIOPublicEndpoint: "files.example.com",
		MinIOBucket:         "suggestion-attachments",
		MinIOPublicUseSSL:   true,
	}
}

func stringPtr(s string) *string {
	return &s
}

func TestSuggestionService_Submit(t *testing.T) {
	ctx := context.Background()
	submitterID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.Suggestion) bool {
			return s.SubmitterID == submitterID &&
				s.Status == domain.StatusNew &&
				s.Problem == "The canteen queue is too long"
		})).Return(nil).Once()

		input := domain.SubmitSuggestionInput{
			Problem:    "  The canteen queue is too long  ",
			Suggestion: stringPtr("Open a second counter"),
			Anonymous:  true,
		}

		suggestion, err := svc.Submit(ctx, submitterID, input, nil)

		assert.NoError(t, err)
		assert.NotNil(t, suggestion)
		assert.Equal(t, domain.StatusNew, suggestion.Status)
		assert.Equal(t, "The canteen queue is too long", suggestion.Problem)
		assert.True(t, suggestion.Anonymous)
		assert.NotNil(t, suggestion.Topics)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Validation Error - Blank Problem", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		suggestion, err := svc.Submit(ctx, submitterID, domain.SubmitSuggestionInput{Problem: "   "}, nil)

		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, suggestion)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation Error - Oversize Attachment", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		attachment := &AttachmentUpload{
			FileName: "huge.pdf",
			Size:     MaxAttachmentSize + 1,
			MimeType: "application/pdf",
			Reader:   bytes.NewReader(nil),
		}

		suggestion, err := svc.Submit(ctx, submitterID, domain.SubmitSuggestionInput{Problem: "Too slow"}, attachment)

		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, suggestion)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Upload Error - Storage Not Configured", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		attachment := &AttachmentUpload{
			FileName: "photo.png",
			Size:     1024,
			MimeType: "image/png",
			Reader:   bytes.NewReader([]byte("png")),
		}

		suggestion, err := svc.Submit(ctx, submitterID, domain.SubmitSuggestionInput{Problem: "Broken chair"}, attachment)

		assert.ErrorIs(t, err, ErrUpload)
		assert.Nil(t, suggestion)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Idempotency Replay Returns Existing Record", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		key := "retry-abc-123"
		existing := &domain.Suggestion{
			ID:          uuid.New(),
			SubmitterID: submitterID,
			Problem:     "Parking is full by 8am",
			Status:      domain.StatusNew,
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Suggestion")).
			Return(&pq.Error{Code: "23505"}).Once()
		mockRepo.On("GetByIdempotencyKey", ctx, submitterID, key).Return(existing, nil).Once()

		input := domain.SubmitSuggestionInput{
			Problem:        "Parking is full by 8am",
			IdempotencyKey: &key,
		}

		suggestion, err := svc.Submit(ctx, submitterID, input, nil)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, suggestion.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestSuggestionService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Decorates Attachment URL", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewSuggestionService(mockRepo, nil, events.NewHub(), testConfig())

		id := uuid.New()
		stored := &domain.Suggestion{
			ID:          id,
			Problem:     "Old projector",
			Status:      domain.StatusNew,
			StoragePath: stringPtr("attachments/u/s-photo.png"),
		}
		mockRepo.On("GetByID", ctx, id).Return(stored, nil).Once()

		suggestion, err := svc.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.NotNil(t, suggestion.AttachmentURL)
		assert.Contains(t, *suggestion.AttachmentURL, "https://files.example.com/suggestion-attachments/")
		mockRepo.AssertExpectations(t)
	})
}
