package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// VoteRepository holds vote membership server-side, so a toggle is exact:
// each voter contributes at most one vote and a double toggle is a no-op pair.
type VoteRepository interface {
	Toggle(ctx context.Context, suggestionID, voterID uuid.UUID) (voted bool, votes int64, err error)
	HasVoted(ctx context.Context, suggestionID, voterID uuid.UUID) (bool, error)
	Count(ctx context.Context, suggestionID uuid.UUID) (int64, error)
}

type voteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Toggle(ctx context.Context, suggestionID, voterID uuid.UUID) (bool, int64, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM suggestion_votes WHERE suggestion_id = $1 AND voter_id = $2`,
		suggestionID, voterID)
	if err != nil {
		return false, 0, err
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	voted := removed == 0
	if voted {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO suggestion_votes (suggestion_id, voter_id) VALUES ($1, $2)`,
			suggestionID, voterID)
		if err != nil {
			return false, 0, err
		}
	}

	var votes int64
	err = tx.GetContext(ctx, &votes,
		`SELECT COUNT(*) FROM suggestion_votes WHERE suggestion_id = $1`, suggestionID)
	if err != nil {
		return false, 0, err
	}

	if err := tx.Commit(); err != nil {
		return false, 0, err
	}
	return voted, votes, nil
}

func (r *voteRepository) HasVoted(ctx context.Context, suggestionID, voterID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM suggestion_votes WHERE suggestion_id = $1 AND voter_id = $2)`,
		suggestionID, voterID)
	return exists, err
}

func (r *voteRepository) Count(ctx context.Context, suggestionID uuid.UUID) (int64, error) {
	var votes int64
	err := r.db.GetContext(ctx, &votes,
		`SELECT COUNT(*) FROM suggestion_votes WHERE suggestion_id = $1`, suggestionID)
	return votes, err
}
