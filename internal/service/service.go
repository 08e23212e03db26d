package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"suggestion-box/internal/config"
	"suggestion-box/internal/events"
	"suggestion-box/internal/repository"
)

type Services struct {
	Auth       AuthService
	Suggestion SuggestionService
	Listing    ListingService
	Review     ReviewService
	Vote       VoteService
	Email      EmailService
	Audit      AuditService
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, hub *events.Hub, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, cfg)
	suggestionService := NewSuggestionService(repos.Suggestion, minioClient, hub, cfg)
	listingService := NewListingService(repos.Suggestion, redisClient, hub, cfg)
	reviewService := NewReviewService(repos.Suggestion, repos.AuditLog, emailService, minioClient, hub, cfg)
	voteService := NewVoteService(repos.Suggestion, repos.Vote, hub)
	auditService := NewAuditService(repos.AuditLog)

	return &Services{
		Auth:       authService,
		Suggestion: suggestionService,
		Listing:    listingService,
		Review:     reviewService,
		Vote:       voteService,
		Email:      emailService,
		Audit:      auditService,
	}
}
