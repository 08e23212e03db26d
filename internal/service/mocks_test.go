package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/repository"
)

type mockSuggestionRepository struct {
	mock.Mock
}

func (m *mockSuggestionRepository) Create(ctx context.Context, s *domain.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suggestion), args.Error(1)
}

func (m *mockSuggestionRepository) GetByIdempotencyKey(ctx context.Context, submitterID uuid.UUID, key string) (*domain.Suggestion, error) {
	args := m.Called(ctx, submitterID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Suggestion), args.Error(1)
}

func (m *mockSuggestionRepository) ListPublic(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *mockSuggestionRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Suggestion, error) {
	args := m.Called(ctx, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

func (m *mockSuggestionRepository) List(ctx context.Context, filter domain.SuggestionFilter, params domain.PaginationParams) ([]domain.Suggestion, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Suggestion), args.Get(1).(int64), args.Error(2)
}

func (m *mockSuggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SuggestionStatus, reason *string, updatedBy uuid.UUID) error {
	args := m.Called(ctx, id, status, reason, updatedBy)
	return args.Error(0)
}

func (m *mockSuggestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSuggestionRepository) CountByStatus(ctx context.Context) (map[domain.SuggestionStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.SuggestionStatus]int64), args.Error(1)
}

type mockVoteRepository struct {
	mock.Mock
}

func (m *mockVoteRepository) Toggle(ctx context.Context, suggestionID, voterID uuid.UUID) (bool, int64, error) {
	args := m.Called(ctx, suggestionID, voterID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockVoteRepository) HasVoted(ctx context.Context, suggestionID, voterID uuid.UUID) (bool, error) {
	args := m.Called(ctx, suggestionID, voterID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVoteRepository) Count(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, suggestionID)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *mockSessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendStatusUpdate(ctx context.Context, toEmail, problem string, status domain.SuggestionStatus, reason *string) error {
	args := m.Called(ctx, toEmail, problem, status, reason)
	return args.Error(0)
}
