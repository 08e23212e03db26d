package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repositories struct {
	Suggestion SuggestionRepository
	Vote       VoteRepository
	User       UserRepository
	Session    SessionRepository
	AuditLog   AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Suggestion: NewSuggestionRepository(db),
		Vote:       NewVoteRepository(db),
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		AuditLog:   NewAuditLogRepository(db),
	}
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, which is how a replayed idempotency key surfaces.
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
