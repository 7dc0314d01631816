package composition

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// ErrInvalidWeight is returned for non-positive input weights; the
// ingredient is excluded from aggregation and reported to the caller.
var ErrInvalidWeight = errors.New("ingredient weight must be positive")

// TableSource is the reference-table lookup the resolver needs.
type TableSource interface {
	Lookup(foodID string) (models.FoodRecord, error)
}

// FactorSource supplies yield and retention correction factors.
type FactorSource interface {
	Yield(method string) float64
	Retention(method, nutrient string) float64
}

// Resolver turns an ingredient entry into its corrected final weight and
// nutrient vector.
type Resolver struct {
	table   TableSource
	factors FactorSource
	logger  *zap.Logger
}

// NewResolver wires a resolver instance.
func NewResolver(table TableSource, factors FactorSource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{table: table, factors: factors, logger: logger}
}

// Resolve applies the corrections in their physical order: remove inedible
// mass, then the cooking-induced mass change, then cooking-induced nutrient
// loss. An edible-portion percentage outside [0,100] is clamped with a
// warning rather than rejected; the reference data must not halt a session.
func (r *Resolver) Resolve(menu string, entry models.IngredientEntry) (models.ResolvedIngredient, error) {
	inputGrams := entry.Grams()
	if inputGrams <= 0 {
		return models.ResolvedIngredient{}, fmt.Errorf("%w: got %.2f g", ErrInvalidWeight, inputGrams)
	}

	food, err := r.table.Lookup(entry.FoodID)
	if err != nil {
		return models.ResolvedIngredient{}, err
	}

	var warnings []string
	bdd := food.EdiblePortionPct
	if bdd < 0 || bdd > 100 {
		clamped := min(max(bdd, 0), 100)
		warnings = append(warnings, fmt.Sprintf("edible portion %.1f%% clamped to %.1f%%", bdd, clamped))
		r.logger.Warn("edible portion out of range",
			zap.String("food_id", food.ID),
			zap.Float64("bdd", bdd),
			zap.Float64("clamped", clamped))
		bdd = clamped
	}

	edibleGrams := inputGrams * bdd / 100
	yield := r.factors.Yield(entry.Method)
	finalGrams := edibleGrams * yield

	nutrients := make(models.NutrientVector, len(food.Nutrients))
	for key, per100 := range food.Nutrients {
		nutrients[key] = per100 / 100 * finalGrams * r.factors.Retention(entry.Method, key)
	}

	return models.ResolvedIngredient{
		Menu:             menu,
		FoodID:           food.ID,
		FoodName:         food.Name,
		Method:           entry.Method,
		InputGrams:       inputGrams,
		EdiblePortionPct: bdd,
		EdibleGrams:      edibleGrams,
		YieldFactor:      yield,
		FinalGrams:       finalGrams,
		Nutrients:        nutrients,
		Warnings:         warnings,
	}, nil
}
