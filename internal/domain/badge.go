package domain

import (
	"strings"
	"time"
)

// Badge is awarded by an external achievement process and never changes afterwards.
type Badge struct {
	ID           int64     `json:"badgeId" db:"badge_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Icon         string    `json:"icon" db:"icon"`
	EarnedAt     time.Time `json:"earnedAt" db:"earned_at"`
	CreatedDate  time.Time `json:"createdDate" db:"created_date"`
	ModifiedDate time.Time `json:"modifiedDate" db:"modified_date"`
}

type CreateBadgeInput struct {
	UserID      int64      `json:"userId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}

func (in CreateBadgeInput) Validate() error {
	v := &ValidationError{}
	if in.UserID <= 0 {
		v.Add("userId", "is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", "is required")
	}
	return v.Err()
}

type UpdateBadgeInput struct {
	ID *int64 `json:"badgeId"`
}
