package composition

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
	"github.com/dedik2urniawan/fct-engine/internal/repository/factors"
	"github.com/dedik2urniawan/fct-engine/internal/repository/reference"
)

type fakeTable map[string]models.FoodRecord

func (t fakeTable) Lookup(foodID string) (models.FoodRecord, error) {
	rec, ok := t[foodID]
	if !ok {
		return models.FoodRecord{}, fmt.Errorf("%w: %s", reference.ErrUnknownFood, foodID)
	}
	return rec, nil
}

func testTable() fakeTable {
	return fakeTable{
		"AR001": {
			ID:               "AR001",
			Name:             "Beras, nasi",
			EdiblePortionPct: 100,
			Nutrients:        models.NutrientVector{"ENERGI": 130, "PROTEIN": 2.4},
		},
		"SY010": {
			ID:               "SY010",
			Name:             "Bayam segar",
			EdiblePortionPct: 71,
			Nutrients:        models.NutrientVector{"ENERGI": 16, "VIT_C": 41, "SERAT": 2.2},
		},
		"XX999": {
			ID:               "XX999",
			Name:             "Data kotor",
			EdiblePortionPct: 120,
			Nutrients:        models.NutrientVector{"ENERGI": 100},
		},
	}
}

func TestResolveBoiledRiceScenario(t *testing.T) {
	t.Parallel()

	// Boiling rice absorbs water: yield 2.0 doubles the weight while the
	// energy content per final gram halves, so total energy follows the
	// final weight.
	set := factors.Default().WithOverrides(map[factors.Key]float64{
		factors.NewKey("direbus", factors.AxisWeight): 2.0,
	})
	r := NewResolver(testTable(), set, nil)

	out, err := r.Resolve("Sarapan", models.IngredientEntry{FoodID: "AR001", Weight: 200, Method: "direbus"})
	require.NoError(t, err)

	assert.InDelta(t, 200.0, out.InputGrams, 1e-9)
	assert.InDelta(t, 200.0, out.EdibleGrams, 1e-9)
	assert.InDelta(t, 400.0, out.FinalGrams, 1e-9)
	assert.InDelta(t, 520.0, out.Nutrients["ENERGI"], 1e-9)
	assert.Empty(t, out.Warnings)
}

func TestResolveUnknownMethodIsIdentity(t *testing.T) {
	t.Parallel()

	r := NewResolver(testTable(), factors.Default(), nil)

	out, err := r.Resolve("Menu", models.IngredientEntry{FoodID: "SY010", Weight: 150, Method: "microwave"})
	require.NoError(t, err)

	// Unknown methods apply no correction at all: only the edible-portion
	// step changes anything.
	edible := 150 * 0.71
	assert.InDelta(t, edible, out.FinalGrams, 1e-9)
	assert.InDelta(t, 1.0, out.YieldFactor, 1e-9)
	assert.InDelta(t, 16.0/100*edible, out.Nutrients["ENERGI"], 1e-9)
	assert.InDelta(t, 41.0/100*edible, out.Nutrients["VIT_C"], 1e-9)
}

func TestResolveAppliesRetention(t *testing.T) {
	t.Parallel()

	r := NewResolver(testTable(), factors.Default(), nil)

	out, err := r.Resolve("Menu", models.IngredientEntry{FoodID: "SY010", Weight: 100, Method: "direbus"})
	require.NoError(t, err)

	final := 100 * 0.71 // boiled yield default is 1.0
	assert.InDelta(t, 41.0/100*final*0.60, out.Nutrients["VIT_C"], 1e-9)
	assert.InDelta(t, 2.2/100*final*0.95, out.Nutrients["SERAT"], 1e-9)
	// No retention row for energy: survives untouched.
	assert.InDelta(t, 16.0/100*final, out.Nutrients["ENERGI"], 1e-9)
}

func TestResolveClampsEdiblePortion(t *testing.T) {
	t.Parallel()

	r := NewResolver(testTable(), factors.Default(), nil)

	out, err := r.Resolve("Menu", models.IngredientEntry{FoodID: "XX999", Weight: 100, Method: "segar"})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, out.EdiblePortionPct, 1e-9)
	assert.InDelta(t, 100.0, out.FinalGrams, 1e-9)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "clamped")
}

func TestResolveKilogramUnit(t *testing.T) {
	t.Parallel()

	r := NewResolver(testTable(), factors.Default(), nil)

	out, err := r.Resolve("Menu", models.IngredientEntry{FoodID: "AR001", Weight: 0.2, Unit: models.UnitKilogram, Method: "segar"})
	require.NoError(t, err)
	assert.InDelta(t, 200.0, out.InputGrams, 1e-9)
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	r := NewResolver(testTable(), factors.Default(), nil)

	tests := []struct {
		name    string
		entry   models.IngredientEntry
		wantErr error
	}{
		{name: "zero weight", entry: models.IngredientEntry{FoodID: "AR001", Weight: 0}, wantErr: ErrInvalidWeight},
		{name: "negative weight", entry: models.IngredientEntry{FoodID: "AR001", Weight: -50}, wantErr: ErrInvalidWeight},
		{name: "unknown food", entry: models.IngredientEntry{FoodID: "NOPE", Weight: 100}, wantErr: reference.ErrUnknownFood},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.Resolve("Menu", tt.entry)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
