package models

// WeightUnit is the unit of an ingredient's input weight.
type WeightUnit string

const (
	UnitGram     WeightUnit = "g"
	UnitKilogram WeightUnit = "kg"
)

// IngredientEntry is one ingredient row of a menu: which food, how much of
// it was weighed raw, and how it is cooked. Entries are replaced rather than
// mutated when edited.
type IngredientEntry struct {
	FoodID string     `json:"food_id" binding:"required"`
	Weight float64    `json:"weight" binding:"required"`
	Unit   WeightUnit `json:"unit,omitempty"`
	Method string     `json:"method,omitempty"`
}

// Grams normalizes the input weight to grams. An empty unit means grams.
func (e IngredientEntry) Grams() float64 {
	if e.Unit == UnitKilogram {
		return e.Weight * 1000
	}
	return e.Weight
}

// MenuEntry is a named, ordered collection of ingredients.
type MenuEntry struct {
	Name        string            `json:"name"`
	Ingredients []IngredientEntry `json:"ingredients"`
}

// ResolvedIngredient carries the full correction trail for one ingredient:
// the weight at each stage and the corrected nutrient amounts.
type ResolvedIngredient struct {
	Menu             string         `json:"menu"`
	FoodID           string         `json:"food_id"`
	FoodName         string         `json:"food_name"`
	Method           string         `json:"method"`
	InputGrams       float64        `json:"input_g"`
	EdiblePortionPct float64        `json:"edible_portion_pct"`
	EdibleGrams      float64        `json:"edible_g"`
	YieldFactor      float64        `json:"yield_factor"`
	FinalGrams       float64        `json:"final_g"`
	Nutrients        NutrientVector `json:"nutrients"`
	Warnings         []string       `json:"warnings,omitempty"`
}

// MenuTotal is the aggregated nutrient vector of one menu.
type MenuTotal struct {
	Menu      string         `json:"menu"`
	Nutrients NutrientVector `json:"nutrients"`
}

// ItemError reports an ingredient that had to be excluded from aggregation.
type ItemError struct {
	Menu   string `json:"menu"`
	FoodID string `json:"food_id"`
	Error  string `json:"error"`
}
