package models

// FoodRecord is one row of the food composition table. Nutrient amounts are
// per 100 g of the raw edible portion. Records are immutable once loaded; a
// table reload replaces them wholesale.
type FoodRecord struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Group            string         `json:"group,omitempty"`
	EdiblePortionPct float64        `json:"edible_portion_pct"`
	Nutrients        NutrientVector `json:"nutrients"`
}
