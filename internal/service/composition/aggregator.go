package composition

import (
	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// AggregateMenu sums the corrected nutrient vectors of one menu's resolved
// ingredients. A strict pointwise sum: no weighting, no deduplication — a
// food used twice contributes twice, independently corrected.
func AggregateMenu(items []models.ResolvedIngredient) models.NutrientVector {
	total := models.NutrientVector{}
	for _, it := range items {
		total.Add(it.Nutrients)
	}
	return total
}

// AggregateDaily sums per-menu totals into a daily intake vector.
func AggregateDaily(menus []models.NutrientVector) models.NutrientVector {
	return models.Sum(menus...)
}
