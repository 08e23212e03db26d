package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"suggestion-box/internal/config"
	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
	"suggestion-box/internal/repository"
)

var (
	ErrReasonRequired = errors.New("rejection reason required")
	ErrInvalidStatus  = errors.New("invalid status")
)

// ReviewService is the admin side of the suggestion lifecycle: status
// transitions and permanent deletion. Any status may move to any other; only
// entry into REJECTED is gated, on a non-blank reason.
type ReviewService interface {
	SetStatus(ctx context.Context, id, actorID uuid.UUID, status domain.SuggestionStatus, reason *string) (*domain.Suggestion, error)
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}

type reviewService struct {
	suggestionRepo repository.SuggestionRepository
	auditRepo      repository.AuditLogRepository
	emailService   EmailService
	minioClient    *minio.Client
	hub            *events.Hub
	cfg            *config.Config
}

func NewReviewService(
	suggestionRepo repository.SuggestionRepository,
	auditRepo repository.AuditLogRepository,
	emailService EmailService,
	minioClient *minio.Client,
	hub *events.Hub,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		suggestionRepo: suggestionRepo,
		auditRepo:      auditRepo,
		emailService:   emailService,
		minioClient:    minioClient,
		hub:            hub,
		cfg:            cfg,
	}
}

func (s *reviewService) SetStatus(ctx context.Context, id, actorID uuid.UUID, status domain.SuggestionStatus, reason *string) (*domain.Suggestion, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusRejected {
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return nil, ErrReasonRequired
		}
		trimmed := strings.TrimSpace(*reason)
		reason = &trimmed
	} else {
		// Leaving REJECTED clears the reason.
		reason = nil
	}

	oldStatus := suggestion.Status
	if err := s.suggestionRepo.UpdateStatus(ctx, id, status, reason, actorID); err != nil {
		return nil, err
	}

	now := time.Now()
	suggestion.Status = status
	suggestion.RejectionReason = reason
	suggestion.UpdatedBy = &actorID
	suggestion.UpdatedAt = &now
	decorateAttachmentURL(suggestion, s.cfg)

	s.logAudit(ctx, actorID, "SET_STATUS", suggestion.ID, oldStatus, status)
	s.notifySubmitter(suggestion)
	s.hub.Publish(events.Event{Type: events.SuggestionUpdated, SuggestionID: suggestion.ID})

	return suggestion, nil
}

func (s *reviewService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.suggestionRepo.Delete(ctx, id); err != nil {
		return err
	}

	if suggestion.StoragePath != nil && s.minioClient != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, *suggestion.StoragePath, minio.RemoveObjectOptions{})
	}

	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     actorID,
		Action:     "DELETE",
		EntityType: "SUGGESTION",
		EntityID:   suggestion.ID,
		OldValue:   json.RawMessage(`{"status":"` + string(suggestion.Status) + `"}`),
		NewValue:   json.RawMessage(`{"deleted":true}`),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for suggestion %s: %v", suggestion.ID, err)
	}

	s.hub.Publish(events.Event{Type: events.SuggestionDeleted, SuggestionID: suggestion.ID})

	return nil
}

func (s *reviewService) logAudit(ctx context.Context, actorID uuid.UUID, action string, entityID uuid.UUID, oldStatus, newStatus domain.SuggestionStatus) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     actorID,
		Action:     action,
		EntityType: "SUGGESTION",
		EntityID:   entityID,
		OldValue:   json.RawMessage(`{"status":"` + string(oldStatus) + `"}`),
		NewValue:   json.RawMessage(`{"status":"` + string(newStatus) + `"}`),
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write audit log for suggestion %s: %v", entityID, err)
	}
}

func (s *reviewService) notifySubmitter(suggestion *domain.Suggestion) {
	if s.emailService == nil || suggestion.Contact == nil || !strings.Contains(*suggestion.Contact, "@") {
		return
	}

	contact := *suggestion.Contact
	problem := suggestion.Problem
	status := suggestion.Status
	reason := suggestion.RejectionReason

	go func() {
		if err := s.emailService.SendStatusUpdate(context.Background(), contact, problem, status, reason); err != nil {
			log.Printf("Failed to send status update email: %v", err)
		}
	}()
}
