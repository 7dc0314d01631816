package composition

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// Result is the outcome of computing a whole session: the per-ingredient
// correction trail, per-menu totals, and the ingredients that had to be
// excluded. Exclusions never abort the rest of the computation.
type Result struct {
	Ingredients []models.ResolvedIngredient `json:"ingredients"`
	Menus       []models.MenuTotal          `json:"menus"`
	Errors      []models.ItemError          `json:"errors,omitempty"`
}

// Service runs the full correction-and-aggregation pipeline over a set of
// menus.
type Service struct {
	resolver *Resolver
	logger   *zap.Logger
}

// NewService wires a composition service instance.
func NewService(resolver *Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{resolver: resolver, logger: logger}
}

// Compute resolves every ingredient of every menu and aggregates per-menu
// totals, preserving menu order. Unresolvable ingredients are reported in
// Result.Errors and skipped.
func (s *Service) Compute(menus []models.MenuEntry) Result {
	var result Result

	for _, menu := range menus {
		resolved := make([]models.ResolvedIngredient, 0, len(menu.Ingredients))
		for _, entry := range menu.Ingredients {
			item, err := s.resolver.Resolve(menu.Name, entry)
			if err != nil {
				s.logger.Warn("ingredient excluded",
					zap.String("menu", menu.Name),
					zap.String("food_id", entry.FoodID),
					zap.Error(err))
				result.Errors = append(result.Errors, models.ItemError{
					Menu:   menu.Name,
					FoodID: entry.FoodID,
					Error:  err.Error(),
				})
				continue
			}
			resolved = append(resolved, item)
		}

		result.Ingredients = append(result.Ingredients, resolved...)
		result.Menus = append(result.Menus, models.MenuTotal{
			Menu:      menu.Name,
			Nutrients: AggregateMenu(resolved),
		})
	}

	return result
}

// DailyIntake derives the daily intake vector from a computed result
// according to the intake selection. Manual mode returns the typed amounts
// untouched; subset mode fails when a named menu does not exist.
func (s *Service) DailyIntake(result Result, selection models.IntakeSelection) (models.NutrientVector, error) {
	if err := selection.Normalize(); err != nil {
		return nil, err
	}

	switch selection.Mode {
	case models.IntakeManual:
		return selection.Manual.Clone(), nil

	case models.IntakeMenuSubset:
		byName := make(map[string]models.NutrientVector, len(result.Menus))
		for _, m := range result.Menus {
			byName[m.Menu] = m.Nutrients
		}

		vectors := make([]models.NutrientVector, 0, len(selection.Menus))
		for _, name := range selection.Menus {
			v, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("menu %q not found in computed result", name)
			}
			vectors = append(vectors, v)
		}
		return AggregateDaily(vectors), nil

	default: // IntakeAllMenus
		vectors := make([]models.NutrientVector, 0, len(result.Menus))
		for _, m := range result.Menus {
			vectors = append(vectors, m.Nutrients)
		}
		return AggregateDaily(vectors), nil
	}
}
