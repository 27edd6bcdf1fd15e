package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemAvailable ItemStatus = "available"
	ItemPending   ItemStatus = "pending"
	ItemSwapped   ItemStatus = "swapped"
	ItemDraft     ItemStatus = "draft"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemAvailable, ItemPending, ItemSwapped, ItemDraft:
		return true
	default:
		return false
	}
}

// Editable reports whether an owner may set this status directly.
func (s ItemStatus) Editable() bool {
	return s == ItemAvailable || s == ItemDraft
}

type ItemCondition string

const (
	ConditionNew       ItemCondition = "new"
	ConditionExcellent ItemCondition = "excellent"
	ConditionGood      ItemCondition = "good"
	ConditionFair      ItemCondition = "fair"
)

var conditionPoints = map[ItemCondition]int{
	ConditionNew:       150,
	ConditionExcellent: 120,
	ConditionGood:      100,
	ConditionFair:      80,
}

// PointsForCondition returns the initial point value of an item in condition c.
func PointsForCondition(c ItemCondition) (int, bool) {
	p, ok := conditionPoints[c]
	return p, ok
}

type Item struct {
	ID              int64               `json:"itemId" db:"item_id"`
	UserID          int64               `json:"userId" db:"user_id"`
	Title           string              `json:"title" db:"title"`
	Description     string              `json:"description" db:"description"`
	Category        string              `json:"category" db:"category"`
	Size            string              `json:"size" db:"size"`
	Condition       ItemCondition       `json:"condition" db:"condition"`
	Color           *string             `json:"color,omitempty" db:"color"`
	Brand           *string             `json:"brand,omitempty" db:"brand"`
	Tags            pq.StringArray      `json:"tags" db:"tags"`
	Images          pq.StringArray      `json:"images" db:"images"`
	Points          int                 `json:"points" db:"points"`
	Status          ItemStatus          `json:"status" db:"status"`
	Views           int                 `json:"views" db:"views"`
	Likes           int                 `json:"likes" db:"likes"`
	IsAIRecommended bool                `json:"isAIRecommended" db:"is_ai_recommended"`
	Location        *string             `json:"location,omitempty" db:"location"`
	Rating          decimal.NullDecimal `json:"rating" db:"rating"`
	CreatedAt       time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time           `json:"updatedAt" db:"updated_at"`
}

type CreateItemInput struct {
	UserID      int64         `json:"userId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Size        string        `json:"size"`
	Condition   ItemCondition `json:"condition"`
	Color       *string       `json:"color,omitempty"`
	Brand       *string       `json:"brand,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Status      ItemStatus    `json:"status,omitempty"`
	Location    *string       `json:"location,omitempty"`
}

func (in *CreateItemInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Size = strings.TrimSpace(in.Size)
	in.Condition = ItemCondition(strings.ToLower(strings.TrimSpace(string(in.Condition))))
	in.Tags = normalizeTags(in.Tags)
	if in.Status == "" {
		in.Status = ItemAvailable
	}
}

func (in CreateItemInput) Validate() error {
	v := &ValidationError{}
	if in.UserID <= 0 {
		v.Add("userId", "is required")
	}
	if in.Title == "" {
		v.Add("title", "is required")
	}
	if in.Category == "" {
		v.Add("category", "is required")
	}
	if in.Size == "" {
		v.Add("size", "is required")
	}
	if _, ok := PointsForCondition(in.Condition); !ok {
		v.Add("condition", "must be one of new, excellent, good, fair")
	}
	if !in.Status.IsValid() {
		v.Add("status", "is not a valid item status")
	}
	return v.Err()
}

// UpdateItemInput carries a partial update. Points, counters and owner are not editable.
type UpdateItemInput struct {
	ID          *int64         `json:"itemId"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Size        *string        `json:"size,omitempty"`
	Condition   *ItemCondition `json:"condition,omitempty"`
	Color       *string        `json:"color,omitempty"`
	Brand       *string        `json:"brand,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Status      *ItemStatus    `json:"status,omitempty"`
	Location    *string        `json:"location,omitempty"`
}

// Apply merges the partial input into item. A status change outside
// available/draft, or away from a lifecycle-held status, is a StateError.
func (in UpdateItemInput) Apply(item *Item) error {
	if in.Status != nil && *in.Status != item.Status {
		if !in.Status.IsValid() {
			return NewValidationError("status", "is not a valid item status")
		}
		if !in.Status.Editable() || !item.Status.Editable() {
			return NewStateError("item", string(item.Status), "set status "+string(*in.Status)+" on")
		}
		item.Status = *in.Status
	}

	v := &ValidationError{}
	if in.Title != nil {
		if t := strings.TrimSpace(*in.Title); t == "" {
			v.Add("title", "is required")
		} else {
			item.Title = t
		}
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		if c := strings.TrimSpace(*in.Category); c == "" {
			v.Add("category", "is required")
		} else {
			item.Category = c
		}
	}
	if in.Size != nil {
		if s := strings.TrimSpace(*in.Size); s == "" {
			v.Add("size", "is required")
		} else {
			item.Size = s
		}
	}
	if in.Condition != nil {
		c := ItemCondition(strings.ToLower(string(*in.Condition)))
		if _, ok := PointsForCondition(c); !ok {
			v.Add("condition", "must be one of new, excellent, good, fair")
		} else {
			item.Condition = c
		}
	}
	if in.Color != nil {
		item.Color = in.Color
	}
	if in.Brand != nil {
		item.Brand = in.Brand
	}
	if in.Tags != nil {
		item.Tags = normalizeTags(in.Tags)
	}
	if in.Images != nil {
		item.Images = in.Images
	}
	if in.Location != nil {
		item.Location = in.Location
	}
	return v.Err()
}

type ItemFilter struct {
	UserID   *int64
	Status   *ItemStatus
	Category string
	Search   string
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
