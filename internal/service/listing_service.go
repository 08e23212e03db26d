package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"suggestion-box/internal/config"
	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
	"suggestion-box/internal/repository"
)

const (
	defaultPublicLimit = 5
	maxPublicLimit     = 50

	cachePublicKey = "suggestions:public:recent"
	cacheStatsKey  = "suggestions:stats"
	cacheTTL       = 60 * time.Second
)

// ListingService serves the three read views. Anonymous records never appear
// in the public listing but always appear in the submitter's own view and in
// the admin view. The public top-N and the stats are cached in Redis and the
// cache is dropped on every change event.
type ListingService interface {
	Public(ctx context.Context, limit int) ([]domain.Suggestion, error)
	Mine(ctx context.Context, submitterID uuid.UUID) ([]domain.Suggestion, error)
	Admin(ctx context.Context, filter domain.SuggestionFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Suggestion], error)
	Stats(ctx context.Context) (*domain.StatusStats, error)
}

type listingService struct {
	suggestionRepo repository.SuggestionRepository
	redis          *redis.Client
	cfg            *config.Config
}

func NewListingService(suggestionRepo repository.SuggestionRepository, redisClient *redis.Client, hub *events.Hub, cfg *config.Config) ListingService {
	s := &listingService{
		suggestionRepo: suggestionRepo,
		redis:          redisClient,
		cfg:            cfg,
	}

	if redisClient != nil && hub != nil {
		ch, _ := hub.Subscribe()
		go s.invalidateOnChange(ch)
	}

	return s
}

func (s *listingService) invalidateOnChange(ch <-chan events.Event) {
	for range ch {
		_ = s.redis.Del(context.Background(), cachePublicKey, cacheStatsKey).Err()
	}
}

func (s *listingService) Public(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}

	// Only the default page is cached; other limits hit the store directly.
	cacheable := limit == defaultPublicLimit && s.redis != nil

	if cacheable {
		if cached, err := s.redis.Get(ctx, cachePublicKey).Result(); err == nil {
			var suggestions []domain.Suggestion
			if json.Unmarshal([]byte(cached), &suggestions) == nil {
				return suggestions, nil
			}
		}
	}

	suggestions, err := s.suggestionRepo.ListPublic(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.decorateAll(suggestions)

	if cacheable {
		if payload, err := json.Marshal(suggestions); err == nil {
			_ = s.redis.Set(ctx, cachePublicKey, payload, cacheTTL).Err()
		}
	}

	return suggestions, nil
}

func (s *listingService) Mine(ctx context.Context, submitterID uuid.UUID) ([]domain.Suggestion, error) {
	suggestions, err := s.suggestionRepo.ListBySubmitter(ctx, submitterID)
	if err != nil {
		return nil, err
	}
	s.decorateAll(suggestions)
	return suggestions, nil
}

func (s *listingService) Admin(ctx context.Context, filter domain.SuggestionFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Suggestion], error) {
	params.Validate()

	suggestions, total, err := s.suggestionRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Suggestion]{}, err
	}
	s.decorateAll(suggestions)

	return domain.NewPaginatedResponse(suggestions, params.Page, params.PageSize, total), nil
}

func (s *listingService) Stats(ctx context.Context) (*domain.StatusStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheStatsKey).Result(); err == nil {
			var stats domain.StatusStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	counts, err := s.suggestionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.StatusStats{
		ByStatus: make(map[domain.SuggestionStatus]int64, len(domain.AllStatuses())),
	}
	for _, status := range domain.AllStatuses() {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheStatsKey, payload, cacheTTL).Err()
		}
	}

	return stats, nil
}

func (s *listingService) decorateAll(suggestions []domain.Suggestion) {
	for i := range suggestions {
		decorateAttachmentURL(&suggestions[i], s.cfg)
	}
}
