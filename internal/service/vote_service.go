package service

import (
	"context"

	"github.com/google/uuid"

	"suggestion-box/internal/domain"
	"suggestion-box/internal/events"
	"suggestion-box/internal/repository"
)

// VoteService toggles a voter's membership on a suggestion. The counter is
// derived from membership, so it never goes negative and a double toggle by
// the same voter is an exact no-op pair.
type VoteService interface {
	Toggle(ctx context.Context, suggestionID, voterID uuid.UUID) (*domain.VoteResult, error)
}

type voteService struct {
	suggestionRepo repository.SuggestionRepository
	voteRepo       repository.VoteRepository
	hub            *events.Hub
}

func NewVoteService(suggestionRepo repository.SuggestionRepository, voteRepo repository.VoteRepository, hub *events.Hub) VoteService {
	return &voteService{
		suggestionRepo: suggestionRepo,
		voteRepo:       voteRepo,
		hub:            hub,
	}
}

func (s *voteService) Toggle(ctx context.Context, suggestionID, voterID uuid.UUID) (*domain.VoteResult, error) {
	if _, err := s.suggestionRepo.GetByID(ctx, suggestionID); err != nil {
		return nil, err
	}

	voted, votes, err := s.voteRepo.Toggle(ctx, suggestionID, voterID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(events.Event{Type: events.SuggestionVoted, SuggestionID: suggestionID})

	return &domain.VoteResult{
		SuggestionID: suggestionID,
		Voted:        voted,
		Votes:        votes,
	}, nil
}
