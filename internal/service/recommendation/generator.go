package recommendation

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rewear/internal/domain"
)

// Generator produces scored recommendations for an item. Implementations may
// call out to an external styling service.
type Generator interface {
	Generate(ctx context.Context, item *domain.Item) ([]domain.Recommendation, error)
}

// HeuristicGenerator scores items from their own attributes. It is
// deterministic and needs no external service.
type HeuristicGenerator struct{}

var occasionByCategory = map[string]int64{
	"outerwear":   90,
	"dresses":     88,
	"tops":        80,
	"bottoms":     78,
	"shoes":       75,
	"accessories": 70,
}

var conditionBonus = map[domain.ItemCondition]int64{
	domain.ConditionNew:       10,
	domain.ConditionExcellent: 6,
	domain.ConditionGood:      3,
}

var hundred = decimal.NewFromInt(100)

func (HeuristicGenerator) Generate(_ context.Context, item *domain.Item) ([]domain.Recommendation, error) {
	style := decimal.NewFromInt(60 + 8*int64(len(item.Tags)))
	if style.GreaterThan(hundred) {
		style = hundred
	}

	color := decimal.NewFromInt(60)
	if item.Color != nil && strings.TrimSpace(*item.Color) != "" {
		color = decimal.NewFromInt(85)
	}

	occasion := decimal.NewFromInt(65)
	if v, ok := occasionByCategory[strings.ToLower(item.Category)]; ok {
		occasion = decimal.NewFromInt(v)
	}

	score := style.Add(color).Add(occasion).
		Div(decimal.NewFromInt(3)).
		Add(decimal.NewFromInt(conditionBonus[item.Condition])).
		Round(2)
	if score.GreaterThan(hundred) {
		score = hundred
	}

	return []domain.Recommendation{{
		ItemID:        item.ID,
		Score:         score,
		StyleMatch:    style,
		ColorMatch:    color,
		OccasionMatch: occasion,
		Reason:        reasonFor(item),
	}}, nil
}

func reasonFor(item *domain.Item) string {
	parts := []string{fmt.Sprintf("%s in %s condition", item.Category, item.Condition)}
	if item.Color != nil && *item.Color != "" {
		parts = append(parts, "easy to pair in "+*item.Color)
	}
	if len(item.Tags) > 0 {
		parts = append(parts, "styled as "+strings.Join(item.Tags, ", "))
	}
	return strings.Join(parts, "; ")
}
