package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"suggestion-box/internal/config"
	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
	"suggestion-box/internal/repository"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrUpload     = errors.New("attachment upload failed")
)

// MaxAttachmentSize caps uploads at 25 MB, checked before any network call.
const MaxAttachmentSize = 25 << 20

type AttachmentUpload struct {
	FileName string
	Size     int64
	MimeType string
	Reader   io.Reader
}

type SuggestionService interface {
	Submit(ctx context.Context, submitterID uuid.UUID, input domain.SubmitSuggestionInput, attachment *AttachmentUpload) (*domain.Suggestion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
}

type suggestionService struct {
	suggestionRepo repository.SuggestionRepository
	minioClient    *minio.Client
	hub            *events.Hub
	cfg            *config.Config
}

func NewSuggestionService(suggestionRepo repository.SuggestionRepository, minioClient *minio.Client, hub *events.Hub, cfg *config.Config) SuggestionService {
	return &suggestionService{
		suggestionRepo: suggestionRepo,
		minioClient:    minioClient,
		hub:            hub,
		cfg:            cfg,
	}
}

// Submit validates the form, uploads the attachment when present, and writes
// exactly one record with status NEW. An upload failure aborts before the
// record write; a record-write failure removes the uploaded object, so no
// partial submission survives. A replayed idempotency key returns the record
// created by the first attempt.
func (s *suggestionService) Submit(ctx context.Context, submitterID uuid.UUID, input domain.SubmitSuggestionInput, attachment *AttachmentUpload) (*domain.Suggestion, error) {
	if strings.TrimSpace(input.Problem) == "" {
		return nil, fmt.Errorf("%w: problem statement is required", ErrValidation)
	}
	if attachment != nil && attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: attachment exceeds the %dMB limit", ErrValidation, MaxAttachmentSize>>20)
	}

	id := uuid.New()

	var storagePath *string
	if attachment != nil {
		if s.minioClient == nil {
			return nil, fmt.Errorf("%w: attachment storage is not configured", ErrUpload)
		}
		path := fmt.Sprintf("attachments/%s/%s-%s", submitterID, id, attachment.FileName)
		_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, path, attachment.Reader, attachment.Size, minio.PutObjectOptions{
			ContentType: attachment.MimeType,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		storagePath = &path
	}

	suggestion := &domain.Suggestion{
		ID:             id,
		SubmitterID:    submitterID,
		Name:           input.Name,
		EmployeeID:     input.EmployeeID,
		Contact:        input.Contact,
		Area:           input.Area,
		Problem:        strings.TrimSpace(input.Problem),
		Suggestion:     input.Suggestion,
		Topics:         input.Topics,
		Benefits:       input.Benefits,
		Involvement:    input.Involvement,
		InvolvementHow: input.InvolvementHow,
		Anonymous:      input.Anonymous,
		Status:         domain.StatusNew,
		StoragePath:    storagePath,
		IdempotencyKey: input.IdempotencyKey,
	}
	if suggestion.Topics == nil {
		suggestion.Topics = []string{}
	}

	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		s.removeObject(ctx, storagePath)

		if repository.IsUniqueViolation(err) && input.IdempotencyKey != nil {
			existing, getErr := s.suggestionRepo.GetByIdempotencyKey(ctx, submitterID, *input.IdempotencyKey)
			if getErr == nil {
				s.decorate(existing)
				return existing, nil
			}
		}
		return nil, err
	}

	s.decorate(suggestion)
	s.hub.Publish(events.Event{Type: events.SuggestionCreated, SuggestionID: suggestion.ID})

	return suggestion, nil
}

func (s *suggestionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decorate(suggestion)
	return suggestion, nil
}

func (s *suggestionService) removeObject(ctx context.Context, storagePath *string) {
	if storagePath == nil || s.minioClient == nil {
		return
	}
	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, *storagePath, minio.RemoveObjectOptions{})
}

func (s *suggestionService) decorate(suggestion *domain.Suggestion) {
	decorateAttachmentURL(suggestion, s.cfg)
}

func decorateAttachmentURL(suggestion *domain.Suggestion, cfg *config.Config) {
	if suggestion == nil || suggestion.StoragePath == nil {
		return
	}
	scheme := "http"
	if cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	attachmentURL := fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.MinIOPublicEndpoint, cfg.MinIOBucket, url.PathEscape(*suggestion.StoragePath))
	suggestion.AttachmentURL = &attachmentURL
}
