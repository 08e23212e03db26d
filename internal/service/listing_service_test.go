package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"suggestion-box/internal/domain"
)

func TestListingService_Public(t *testing.T) {
	ctx := context.Background()

	t.Run("Zero Limit Uses Default", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewListingService(mockRepo, nil, nil, testConfig())

		mockRepo.On("ListPublic", ctx, 5).Return([]domain.Suggestion{}, nil).Once()

		_, err := svc.Public(ctx, 0)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Excessive Limit Is Capped", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewListingService(mockRepo, nil, nil, testConfig())

		mockRepo.On("ListPublic", ctx, 50).Return([]domain.Suggestion{}, nil).Once()

		_, err := svc.Public(ctx, 500)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Decorates Attachment URLs", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewListingService(mockRepo, nil, nil, testConfig())

		mockRepo.On("ListPublic", ctx, 5).Return([]domain.Suggestion{
			{ID: uuid.New(), Problem: "Dark hallway", StoragePath: stringPtr("attachments/a/b.png")},
			{ID: uuid.New(), Problem: "No bike racks"},
		}, nil).Once()

		suggestions, err := svc.Public(ctx, 5)

		assert.NoError(t, err)
		assert.NotNil(t, suggestions[0].AttachmentURL)
		assert.Nil(t, suggestions[1].AttachmentURL)
	})
}

func TestListingService_Admin(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes Pagination", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewListingService(mockRepo, nil, nil, testConfig())

		expected := domain.PaginationParams{Page: 1, PageSize: 20}
		mockRepo.On("List", ctx, domain.SuggestionFilter{}, expected).
			Return([]domain.Suggestion{}, int64(42), nil).Once()

		response, err := svc.Admin(ctx, domain.SuggestionFilter{}, domain.PaginationParams{Page: 0, PageSize: 0})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), response.TotalItems)
		assert.Equal(t, 3, response.TotalPages)
		assert.True(t, response.HasNext)
		assert.False(t, response.HasPrev)
		mockRepo.AssertExpectations(t)
	})
}

func TestListingService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Fills Every Status Bucket", func(t *testing.T) {
		mockRepo := new(mockSuggestionRepository)
		svc := NewListingService(mockRepo, nil, nil, testConfig())

		mockRepo.On("CountByStatus", ctx).Return(map[domain.SuggestionStatus]int64{
			domain.StatusNew:      2,
			domain.StatusAccepted: 1,
		}, nil).Once()

		stats, err := svc.Stats(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Len(t, stats.ByStatus, len(domain.AllStatuses()))
		assert.Equal(t, int64(2), stats.ByStatus[domain.StatusNew])
		assert.Equal(t, int64(0), stats.ByStatus[domain.StatusRejected])
	})
}
