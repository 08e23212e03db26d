package handler

import (
	"suggestion-box/internal/events"
	"suggestion-box/internal/service"
)

type Handlers struct {
	Auth       *AuthHandler
	Public     *PublicHandler
	Suggestion *SuggestionHandler
	Admin      *AdminHandler
	Audit      *AuditHandler
	Stream     *StreamHandler
}

func NewHandlers(services *service.Services, hub *events.Hub) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth),
		Public:     NewPublicHandler(services.Listing),
		Suggestion: NewSuggestionHandler(services.Suggestion, services.Listing, services.Vote),
		Admin:      NewAdminHandler(services.Listing, services.Review),
		Audit:      NewAuditHandler(services.Audit),
		Stream:     NewStreamHandler(services.Listing, hub),
	}
}
