package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SuggestionStatus string

const (
	StatusNew        SuggestionStatus = "NEW"
	StatusInProgress SuggestionStatus = "IN_PROGRESS"
	StatusAccepted   SuggestionStatus = "ACCEPTED"
	StatusRejected   SuggestionStatus = "REJECTED"
	StatusCompleted  SuggestionStatus = "COMPLETED"
)

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

func AllStatuses() []SuggestionStatus {
	return []SuggestionStatus{StatusNew, StatusInProgress, StatusAccepted, StatusRejected, StatusCompleted}
}

type Suggestion struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	SubmitterID     uuid.UUID        `json:"submitter_id" db:"submitter_id"`
	Name            *string          `json:"name,omitempty" db:"name"`
	EmployeeID      *string          `json:"employee_id,omitempty" db:"employee_id"`
	Contact         *string          `json:"contact,omitempty" db:"contact"`
	Area            *string          `json:"area,omitempty" db:"area"`
	Problem         string           `json:"problem" db:"problem"`
	Suggestion      *string          `json:"suggestion,omitempty" db:"suggestion"`
	Topics          pq.StringArray   `json:"topics" db:"topics"`
	Benefits        *string          `json:"benefits,omitempty" db:"benefits"`
	Involvement     bool             `json:"involvement" db:"involvement"`
	InvolvementHow  *string          `json:"involvement_how,omitempty" db:"involvement_how"`
	Anonymous       bool             `json:"anonymous" db:"anonymous"`
	Status          SuggestionStatus `json:"status" db:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	StoragePath     *string          `json:"-" db:"storage_path"`
	AttachmentURL   *string          `json:"attachment_url,omitempty" db:"-"`
	Votes           int64            `json:"votes" db:"votes"`
	IdempotencyKey  *string          `json:"-" db:"idempotency_key"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedBy       *uuid.UUID       `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}

type SubmitSuggestionInput struct {
	Name           *string  `json:"name,omitempty"`
	EmployeeID     *string  `json:"employee_id,omitempty"`
	Contact        *string  `json:"contact,omitempty"`
	Area           *string  `json:"area,omitempty"`
	Problem        string   `json:"problem" validate:"required"`
	Suggestion     *string  `json:"suggestion,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	Benefits       *string  `json:"benefits,omitempty"`
	Involvement    bool     `json:"involvement"`
	InvolvementHow *string  `json:"involvement_how,omitempty" validate:"omitempty,max=500"`
	Anonymous      bool     `json:"anonymous"`
	IdempotencyKey *string  `json:"-"`
}

type SetStatusInput struct {
	Status          SuggestionStatus `json:"status" validate:"required"`
	RejectionReason *string          `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

// SuggestionFilter narrows the admin listing. Zero values mean "no filter";
// all predicates compose with AND and match case-insensitively.
type SuggestionFilter struct {
	Status *SuggestionStatus `json:"status,omitempty" query:"status"`
	Area   string            `json:"area,omitempty" query:"area"`
	Query  string            `json:"q,omitempty" query:"q"`
}

type StatusStats struct {
	Total    int64                      `json:"total"`
	ByStatus map[SuggestionStatus]int64 `json:"by_status"`
}

type VoteResult struct {
	SuggestionID uuid.UUID `json:"suggestion_id"`
	Voted        bool      `json:"voted"`
	Votes        int64     `json:"votes"`
}
