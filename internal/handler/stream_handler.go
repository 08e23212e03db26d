package handler

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
	"suggestion-box/internal/middleware"
	"suggestion-box/internal/service"
)

const (
	snapshotTimeout = 5 * time.Second
	adminStreamSize = 100
)

// StreamHandler pushes listing snapshots over a websocket. Every suggestion
// event triggers a fresh snapshot of the subscribed scope, so clients render
// whole lists instead of patching diffs.
type StreamHandler struct {
	listingService service.ListingService
	hub            *events.Hub
}

func NewStreamHandler(listingService service.ListingService, hub *events.Hub) *StreamHandler {
	return &StreamHandler{
		listingService: listingService,
		hub:            hub,
	}
}

type streamMessage struct {
	Scope       string              `json:"scope"`
	Event       *events.Event       `json:"event,omitempty"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	Count       int                 `json:"count"`
}

func (h *StreamHandler) Serve(c *websocket.Conn) {
	defer c.Close()

	user, ok := c.Locals(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return
	}

	scope := c.Query("scope", "public")
	switch scope {
	case "public", "mine":
	case "all":
		if !user.HasRole(domain.RoleAdmin) {
			_ = c.WriteJSON(map[string]string{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions for this operation",
			})
			return
		}
	default:
		_ = c.WriteJSON(map[string]string{
			"code":    "VALIDATION_ERROR",
			"message": "Unknown scope: " + scope,
		})
		return
	}

	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// Drain the read side so we notice when the peer goes away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.push(c, scope, user, nil); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case ev, chOpen := <-ch:
			if !chOpen {
				return
			}
			if err := h.push(c, scope, user, &ev); err != nil {
				return
			}
		}
	}
}

// push sends a snapshot of the scope. Snapshot query failures are logged and
// the connection stays up; only a write failure tears it down.
func (h *StreamHandler) push(c *websocket.Conn, scope string, user *domain.User, ev *events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	suggestions, err := h.snapshot(ctx, scope, user)
	if err != nil {
		log.Printf("Failed to build %s stream snapshot: %v", scope, err)
		return nil
	}

	return c.WriteJSON(streamMessage{
		Scope:       scope,
		Event:       ev,
		Suggestions: suggestions,
		Count:       len(suggestions),
	})
}

func (h *StreamHandler) snapshot(ctx context.Context, scope string, user *domain.User) ([]domain.Suggestion, error) {
	switch scope {
	case "mine":
		return h.listingService.Mine(ctx, user.ID)
	case "all":
		response, err := h.listingService.Admin(ctx, domain.SuggestionFilter{}, domain.PaginationParams{
			Page:     1,
			PageSize: adminStreamSize,
		})
		if err != nil {
			return nil, err
		}
		return response.Data, nil
	default:
		return h.listingService.Public(ctx, 0)
	}
}
