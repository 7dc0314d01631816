package factors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYieldLookup(t *testing.T) {
	t.Parallel()

	set := Default()

	tests := []struct {
		name   string
		method string
		want   float64
	}{
		{name: "boiled keeps weight", method: "DIREBUS", want: 1.0},
		{name: "frying loses weight", method: "DIGORENG", want: 0.85},
		{name: "case insensitive", method: "digoreng", want: 0.85},
		{name: "surrounding spaces ignored", method: "  tumis ", want: 0.90},
		{name: "unknown method is identity", method: "MICROWAVE", want: 1.0},
		{name: "empty method is identity", method: "", want: 1.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, set.Yield(tt.method), 1e-9)
		})
	}
}

func TestRetentionChain(t *testing.T) {
	t.Parallel()

	set := Default()

	t.Run("nutrient specific row wins", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.60, set.Retention("direbus", "VIT_C"), 1e-9)
	})

	t.Run("falls back to the method ALL row", func(t *testing.T) {
		t.Parallel()
		// SEGAR only declares an ALL row; any nutrient resolves through it.
		assert.InDelta(t, 1.0, set.Retention("SEGAR", "VIT_C"), 1e-9)
	})

	t.Run("no row at all is identity", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, set.Retention("DIREBUS", "ENERGI"), 1e-9)
		assert.InDelta(t, 1.0, set.Retention("KUKUS", "VIT_C"), 1e-9)
	})
}

func TestOverridePrecedence(t *testing.T) {
	t.Parallel()

	set := Default().WithOverrides(map[Key]float64{
		NewKey("direbus", "vit_c"):    0.50,
		NewKey("direbus", AxisWeight): 2.0,
		NewKey("segar", AxisAll):      0.99,
	})

	assert.InDelta(t, 0.50, set.Retention("DIREBUS", "VIT_C"), 1e-9, "override beats default")
	assert.InDelta(t, 2.0, set.Yield("DIREBUS"), 1e-9)
	assert.InDelta(t, 0.99, set.Retention("SEGAR", "BESI"), 1e-9, "ALL override beats ALL default")
	assert.InDelta(t, 0.95, set.Retention("DIREBUS", "SERAT"), 1e-9, "untouched defaults survive")
}

func TestWithOverridesIsImmutable(t *testing.T) {
	t.Parallel()

	base := Default()
	derived := base.WithOverrides(map[Key]float64{NewKey("direbus", AxisWeight): 2.0})

	assert.InDelta(t, 1.0, base.Yield("DIREBUS"), 1e-9, "base set must not change")
	assert.InDelta(t, 2.0, derived.Yield("DIREBUS"), 1e-9)

	// Mutating the returned copy must not leak into the set.
	got := derived.Overrides()
	got[NewKey("direbus", AxisWeight)] = 99
	assert.InDelta(t, 2.0, derived.Yield("DIREBUS"), 1e-9)
}

func TestStoreSwap(t *testing.T) {
	t.Parallel()

	store := NewStore()
	require.NotNil(t, store.Current())
	assert.InDelta(t, 0.85, store.Current().Yield("DIGORENG"), 1e-9)

	store.Swap(store.Current().WithOverrides(map[Key]float64{
		NewKey("digoreng", AxisWeight): 0.80,
	}))
	assert.InDelta(t, 0.80, store.Current().Yield("DIGORENG"), 1e-9)
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Metode", "Sumbu", "Faktor"},
		{"DIREBUS", "YIELD", "0,95"},
		{"direbus", "vit_c", "0.55"},
		{"KUKUS", "ALL", "0.9"},
		{"DIGORENG", "PROTEIN", "abc"},
		{"", "VIT_C", "0.5"},
		{"TUMIS", "SERAT", "-1"},
		{"TUMIS", "SERAT"},
	}

	overrides, skipped := ParseOverrides(rows, nil)

	assert.Equal(t, 4, skipped)
	require.Len(t, overrides, 3)
	assert.InDelta(t, 0.95, overrides[NewKey("DIREBUS", AxisWeight)], 1e-9, "YIELD normalizes to the weight axis, decimal comma accepted")
	assert.InDelta(t, 0.55, overrides[NewKey("DIREBUS", "VIT_C")], 1e-9)
	assert.InDelta(t, 0.9, overrides[NewKey("KUKUS", AxisAll)], 1e-9)
}

func TestParseOverridesCSV(t *testing.T) {
	t.Parallel()

	csvData := "method,axis,factor\nDIREBUS,WEIGHT,0.95\nTUMIS,VIT_C,0.75\n"

	overrides, skipped, err := ParseOverridesCSV(strings.NewReader(csvData), nil)
	require.NoError(t, err)

	assert.Zero(t, skipped)
	assert.InDelta(t, 0.95, overrides[NewKey("DIREBUS", AxisWeight)], 1e-9)
	assert.InDelta(t, 0.75, overrides[NewKey("TUMIS", "VIT_C")], 1e-9)
}
