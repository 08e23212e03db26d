package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"suggestion-box/internal/domain"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s *domain.Suggestion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error)
	GetByIdempotencyKey(ctx context.Context, submitterID uuid.UUID, key string) (*domain.Suggestion, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Suggestion, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Suggestion, error)
	List(ctx context.Context, filter domain.SuggestionFilter, params domain.PaginationParams) ([]domain.Suggestion, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SuggestionStatus, reason *string, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[domain.SuggestionStatus]int64, error)
}

// Legacy rows may carry a NULL status; they count as NEW everywhere.
const suggestionColumns = `
	s.id, s.submitter_id, s.name, s.employee_id, s.contact, s.area,
	s.problem, s.suggestion, s.topics, s.benefits, s.involvement, s.involvement_how,
	s.anonymous, COALESCE(s.status, 'NEW') AS status, s.rejection_reason,
	s.storage_path, s.idempotency_key, s.created_at, s.updated_by, s.updated_at,
	(SELECT COUNT(*) FROM suggestion_votes v WHERE v.suggestion_id = s.id) AS votes`

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, s *domain.Suggestion) error {
	query := `
		INSERT INTO suggestions (
			id, submitter_id, name, employee_id, contact, area,
			problem, suggestion, topics, benefits, involvement, involvement_how,
			anonymous, status, storage_path, idempotency_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		s.ID, s.SubmitterID, s.Name, s.EmployeeID, s.Contact, s.Area,
		s.Problem, s.Suggestion, s.Topics, s.Benefits, s.Involvement, s.InvolvementHow,
		s.Anonymous, s.Status, s.StoragePath, s.IdempotencyKey,
	).Scan(&s.CreatedAt)
}

func (r *suggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Suggestion, error) {
	var s domain.Suggestion
	query := fmt.Sprintf(`SELECT %s FROM suggestions s WHERE s.id = $1`, suggestionColumns)
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepository) GetByIdempotencyKey(ctx context.Context, submitterID uuid.UUID, key string) (*domain.Suggestion, error) {
	var s domain.Suggestion
	query := fmt.Sprintf(`SELECT %s FROM suggestions s WHERE s.submitter_id = $1 AND s.idempotency_key = $2`, suggestionColumns)
	err := r.db.GetContext(ctx, &s, query, submitterID, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepository) ListPublic(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	suggestions := []domain.Suggestion{}
	query := fmt.Sprintf(`
		SELECT %s FROM suggestions s
		WHERE s.anonymous = FALSE
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1`, suggestionColumns)
	err := r.db.SelectContext(ctx, &suggestions, query, limit)
	return suggestions, err
}

func (r *suggestionRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Suggestion, error) {
	suggestions := []domain.Suggestion{}
	query := fmt.Sprintf(`
		SELECT %s FROM suggestions s
		WHERE s.submitter_id = $1
		ORDER BY s.created_at DESC, s.id DESC`, suggestionColumns)
	err := r.db.SelectContext(ctx, &suggestions, query, submitterID)
	return suggestions, err
}

func (r *suggestionRepository) List(ctx context.Context, filter domain.SuggestionFilter, params domain.PaginationParams) ([]domain.Suggestion, int64, error) {
	params.Validate()

	where, args := buildFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM suggestions s` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	suggestions := []domain.Suggestion{}
	query := fmt.Sprintf(`
		SELECT %s FROM suggestions s%s
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $%d OFFSET $%d`, suggestionColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	err := r.db.SelectContext(ctx, &suggestions, query, args...)
	return suggestions, total, err
}

func buildFilter(filter domain.SuggestionFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("COALESCE(s.status, 'NEW') = $%d", len(args)))
	}
	if filter.Area != "" {
		args = append(args, "%"+filter.Area+"%")
		conditions = append(conditions, fmt.Sprintf("s.area ILIKE $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(s.problem ILIKE $%d OR COALESCE(s.suggestion, '') ILIKE $%d OR COALESCE(s.name, '') ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *suggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SuggestionStatus, reason *string, updatedBy uuid.UUID) error {
	query := `
		UPDATE suggestions
		SET status = $2, rejection_reason = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, reason, updatedBy)
	return err
}

func (r *suggestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM suggestions WHERE id = $1`, id)
	return err
}

func (r *suggestionRepository) CountByStatus(ctx context.Context) (map[domain.SuggestionStatus]int64, error) {
	rows := []struct {
		Status domain.SuggestionStatus `db:"status"`
		Count  int64                   `db:"count"`
	}{}

	query := `
		SELECT COALESCE(status, 'NEW') AS status, COUNT(*) AS count
		FROM suggestions
		GROUP BY COALESCE(status, 'NEW')`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	counts := make(map[domain.SuggestionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
