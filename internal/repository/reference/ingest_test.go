package reference

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping() ColumnMapping {
	return ColumnMapping{
		ID:            "KODE",
		Name:          "NAMA",
		Group:         "KELOMPOK",
		EdiblePortion: "BDD",
		Nutrients: map[string]string{
			"ENERGI":  "ENERGI",
			"PROTEIN": "PROTEIN",
			"VIT_C":   "VIT_C",
		},
	}
}

func testRows() [][]string {
	return [][]string{
		{"KODE", "NAMA", "KELOMPOK", "BDD", "ENERGI", "PROTEIN", "VIT_C"},
		{"AR001", "Beras", "Serealia", "100", "360", "6,8", "0"},
		{"SY010", "Bayam", "Sayuran", "71", "16", "0.9", "41"},
	}
}

func TestBuildIngestsRows(t *testing.T) {
	t.Parallel()

	table, err := Build(testRows(), testMapping(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"ENERGI", "PROTEIN", "VIT_C"}, table.Nutrients())

	rec, err := table.Lookup("AR001")
	require.NoError(t, err)
	assert.Equal(t, "Beras", rec.Name)
	assert.Equal(t, "Serealia", rec.Group)
	assert.InDelta(t, 100.0, rec.EdiblePortionPct, 1e-9)
	assert.InDelta(t, 360.0, rec.Nutrients["ENERGI"], 1e-9)
	// Decimal commas are the TKPI locale convention.
	assert.InDelta(t, 6.8, rec.Nutrients["PROTEIN"], 1e-9)
}

func TestBuildMissingIDColumnIsSchemaError(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"NAMA", "ENERGI"},
		{"Beras", "360"},
	}

	_, err := Build(rows, testMapping(), nil)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "KODE", schemaErr.Column)
}

func TestBuildCoercesBadCells(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"KODE", "NAMA", "BDD", "ENERGI", "PROTEIN", "VIT_C"},
		{"AR001", "Beras", "100", "n/a", "6.8", "-"},
		{"", "Tanpa kode", "100", "10", "1", "1"},
		{"AR001", "Beras duplikat", "100", "999", "99", "9"},
	}

	table, err := Build(rows, testMapping(), nil)
	require.NoError(t, err)

	stats := table.Stats()
	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 1, stats.SkippedRows, "rows without an identifier are dropped")
	assert.Equal(t, 1, stats.Duplicates, "first record wins on duplicate identifiers")
	assert.Equal(t, 2, stats.CoercedCells)

	rec, err := table.Lookup("AR001")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rec.Nutrients["ENERGI"], 1e-9, "bad cells coerce to zero")
	assert.InDelta(t, 0.0, rec.Nutrients["VIT_C"], 1e-9)
	assert.InDelta(t, 6.8, rec.Nutrients["PROTEIN"], 1e-9)
}

func TestBuildDefaultsForMissingOptionalColumns(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"KODE", "ENERGI", "PROTEIN"},
		{"AR001", "360", "6.8"},
	}

	table, err := Build(rows, testMapping(), nil)
	require.NoError(t, err)

	rec, err := table.Lookup("AR001")
	require.NoError(t, err)
	assert.Equal(t, "AR001", rec.Name, "name falls back to the identifier")
	assert.InDelta(t, 100.0, rec.EdiblePortionPct, 1e-9, "missing BDD defaults to fully edible")
	assert.NotContains(t, rec.Nutrients, "VIT_C", "unmapped nutrient columns vanish")
}

func TestBuildRejectsEmptySource(t *testing.T) {
	t.Parallel()

	_, err := Build(nil, testMapping(), nil)
	require.Error(t, err)

	_, err = Build([][]string{{"KODE", "FOO"}}, testMapping(), nil)
	require.Error(t, err, "a header with no mappable nutrient column is useless")
}

func TestLookupUnknownFood(t *testing.T) {
	t.Parallel()

	table, err := Build(testRows(), testMapping(), nil)
	require.NoError(t, err)

	_, err = table.Lookup("ZZ999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFood))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	table, err := Build(testRows(), testMapping(), nil)
	require.NoError(t, err)

	t.Run("matches name case insensitively", func(t *testing.T) {
		t.Parallel()
		got := table.Search("bAyAm", 10)
		require.Len(t, got, 1)
		assert.Equal(t, "SY010", got[0].ID)
	})

	t.Run("matches identifier", func(t *testing.T) {
		t.Parallel()
		got := table.Search("ar0", 10)
		require.Len(t, got, 1)
		assert.Equal(t, "AR001", got[0].ID)
	})

	t.Run("empty query lists from the top", func(t *testing.T) {
		t.Parallel()
		got := table.Search("", 1)
		require.Len(t, got, 1)
		assert.Equal(t, "AR001", got[0].ID, "listing follows identifier order")
	})
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	csvData := strings.Join([]string{
		"KODE,NAMA,KELOMPOK,BDD,ENERGI,PROTEIN,VIT_C",
		"AR001,Beras,Serealia,100,360,6.8,0",
		"SY010,Bayam,Sayuran,71,16,0.9,41",
	}, "\n")

	table, err := LoadCSV(strings.NewReader(csvData), testMapping(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	rec, err := table.Lookup("SY010")
	require.NoError(t, err)
	assert.InDelta(t, 71.0, rec.EdiblePortionPct, 1e-9)
}

func TestStoreSwap(t *testing.T) {
	t.Parallel()

	store := NewStore()
	assert.Nil(t, store.Current(), "nothing loaded at startup")

	table, err := Build(testRows(), testMapping(), nil)
	require.NoError(t, err)

	store.Swap(table)
	require.NotNil(t, store.Current())
	assert.Equal(t, 2, store.Current().Len())
}

func TestDefaultTKPIMappingNormalizes(t *testing.T) {
	t.Parallel()

	m := ColumnMapping{
		ID: "  KODE  ",
		Nutrients: map[string]string{
			"energi": " ENERGI ",
			"":       "X",
			"LEMAK":  "",
		},
	}.Normalize()

	assert.Equal(t, "KODE", m.ID)
	require.Len(t, m.Nutrients, 1)
	assert.Equal(t, "ENERGI", m.Nutrients["ENERGI"])
}
