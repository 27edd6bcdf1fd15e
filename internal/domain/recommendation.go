package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	minScore = decimal.Zero
	maxScore = decimal.NewFromInt(100)
)

type Recommendation struct {
	ID            int64           `json:"recommendationId" db:"recommendation_id"`
	ItemID        int64           `json:"itemId" db:"item_id"`
	UserID        *int64          `json:"userId,omitempty" db:"user_id"`
	Score         decimal.Decimal `json:"score" db:"score"`
	StyleMatch    decimal.Decimal `json:"styleMatch" db:"style_match"`
	ColorMatch    decimal.Decimal `json:"colorMatch" db:"color_match"`
	OccasionMatch decimal.Decimal `json:"occasionMatch" db:"occasion_match"`
	Reason        string          `json:"reason" db:"reason"`
	CreatedAt     time.Time       `json:"createdDate" db:"created_at"`
}

type CreateRecommendationInput struct {
	ItemID        int64           `json:"itemId"`
	UserID        *int64          `json:"userId,omitempty"`
	Score         decimal.Decimal `json:"score"`
	StyleMatch    decimal.Decimal `json:"styleMatch"`
	ColorMatch    decimal.Decimal `json:"colorMatch"`
	OccasionMatch decimal.Decimal `json:"occasionMatch"`
	Reason        string          `json:"reason"`
}

func (in CreateRecommendationInput) Validate() error {
	v := &ValidationError{}
	if in.ItemID <= 0 {
		v.Add("itemId", "is required")
	}
	validateScore(v, "score", in.Score)
	validateScore(v, "styleMatch", in.StyleMatch)
	validateScore(v, "colorMatch", in.ColorMatch)
	validateScore(v, "occasionMatch", in.OccasionMatch)
	return v.Err()
}

type UpdateRecommendationInput struct {
	ID            *int64           `json:"recommendationId"`
	Score         *decimal.Decimal `json:"score,omitempty"`
	StyleMatch    *decimal.Decimal `json:"styleMatch,omitempty"`
	ColorMatch    *decimal.Decimal `json:"colorMatch,omitempty"`
	OccasionMatch *decimal.Decimal `json:"occasionMatch,omitempty"`
	Reason        *string          `json:"reason,omitempty"`
}

func (in UpdateRecommendationInput) Apply(r *Recommendation) error {
	v := &ValidationError{}
	set := func(field string, dst *decimal.Decimal, src *decimal.Decimal) {
		if src == nil {
			return
		}
		validateScore(v, field, *src)
		*dst = src.Round(2)
	}
	set("score", &r.Score, in.Score)
	set("styleMatch", &r.StyleMatch, in.StyleMatch)
	set("colorMatch", &r.ColorMatch, in.ColorMatch)
	set("occasionMatch", &r.OccasionMatch, in.OccasionMatch)
	if in.Reason != nil {
		r.Reason = *in.Reason
	}
	return v.Err()
}

func validateScore(v *ValidationError, field string, d decimal.Decimal) {
	if d.LessThan(minScore) || d.GreaterThan(maxScore) {
		v.Add(field, "must be between 0 and 100")
		return
	}
	if !d.Equal(d.Round(2)) {
		v.Add(field, "must have at most two decimal places")
	}
}
