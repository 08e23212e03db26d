package service

import (
	"context"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/repository"
)

type AuditService interface {
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		auditRepo: auditRepo,
	}
}

func (s *auditService) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
