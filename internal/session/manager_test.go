package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	m := NewManager(time.Hour, nil)
	s := m.Create()
	return m, s.ID
}

func TestCreateAndDelete(t *testing.T) {
	t.Parallel()

	m := NewManager(time.Hour, nil)
	s1 := m.Create()
	s2 := m.Create()

	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, 2, m.Len())

	m.Delete(s1.ID)
	assert.Equal(t, 1, m.Len())

	_, err := m.Snapshot(s1.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMenuLifecycle(t *testing.T) {
	t.Parallel()

	m, id := newTestManager(t)

	require.NoError(t, m.AddMenu(id, "Sarapan"))
	require.NoError(t, m.AddMenu(id, "Makan Siang"))

	t.Run("names are unique per session", func(t *testing.T) {
		err := m.AddMenu(id, "Sarapan")
		assert.ErrorIs(t, err, ErrMenuExists)
	})

	t.Run("rename keeps uniqueness", func(t *testing.T) {
		err := m.RenameMenu(id, "Makan Siang", "Sarapan")
		assert.ErrorIs(t, err, ErrMenuExists)

		require.NoError(t, m.RenameMenu(id, "Makan Siang", "Makan Malam"))
		menus, err := m.Snapshot(id)
		require.NoError(t, err)
		require.Len(t, menus, 2)
		assert.Equal(t, "Makan Malam", menus[1].Name)
	})

	t.Run("rename to same name is a no-op", func(t *testing.T) {
		assert.NoError(t, m.RenameMenu(id, "Sarapan", "Sarapan"))
	})

	t.Run("delete removes the menu", func(t *testing.T) {
		require.NoError(t, m.DeleteMenu(id, "Makan Malam"))
		menus, err := m.Snapshot(id)
		require.NoError(t, err)
		require.Len(t, menus, 1)
		assert.Equal(t, "Sarapan", menus[0].Name)
	})

	t.Run("unknown menu is surfaced", func(t *testing.T) {
		assert.ErrorIs(t, m.DeleteMenu(id, "Cemilan"), ErrMenuNotFound)
		assert.ErrorIs(t, m.RenameMenu(id, "Cemilan", "X"), ErrMenuNotFound)
	})
}

func TestIngredientLifecycle(t *testing.T) {
	t.Parallel()

	m, id := newTestManager(t)
	require.NoError(t, m.AddMenu(id, "Sarapan"))

	rice := models.IngredientEntry{FoodID: "AR001", Weight: 200, Method: "direbus"}
	spinach := models.IngredientEntry{FoodID: "SY010", Weight: 100, Method: "tumis"}

	require.NoError(t, m.AddIngredient(id, "Sarapan", rice))
	require.NoError(t, m.AddIngredient(id, "Sarapan", spinach))

	t.Run("replace swaps in place", func(t *testing.T) {
		updated := models.IngredientEntry{FoodID: "AR001", Weight: 250, Method: "direbus"}
		require.NoError(t, m.ReplaceIngredient(id, "Sarapan", 0, updated))

		menus, err := m.Snapshot(id)
		require.NoError(t, err)
		require.Len(t, menus[0].Ingredients, 2)
		assert.InDelta(t, 250.0, menus[0].Ingredients[0].Weight, 1e-9)
	})

	t.Run("position bounds are checked", func(t *testing.T) {
		err := m.ReplaceIngredient(id, "Sarapan", 5, rice)
		assert.ErrorIs(t, err, ErrIngredientNotFound)
		err = m.DeleteIngredient(id, "Sarapan", -1)
		assert.ErrorIs(t, err, ErrIngredientNotFound)
	})

	t.Run("delete shifts the remainder", func(t *testing.T) {
		require.NoError(t, m.DeleteIngredient(id, "Sarapan", 0))
		menus, err := m.Snapshot(id)
		require.NoError(t, err)
		require.Len(t, menus[0].Ingredients, 1)
		assert.Equal(t, "SY010", menus[0].Ingredients[0].FoodID)
	})

	t.Run("missing session is surfaced", func(t *testing.T) {
		err := m.AddIngredient("nope", "Sarapan", rice)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	m, id := newTestManager(t)
	require.NoError(t, m.AddMenu(id, "Sarapan"))
	require.NoError(t, m.AddIngredient(id, "Sarapan", models.IngredientEntry{FoodID: "AR001", Weight: 200}))

	snap, err := m.Snapshot(id)
	require.NoError(t, err)

	// Mutating the snapshot must not leak back into live state.
	snap[0].Name = "changed"
	snap[0].Ingredients[0].Weight = 1

	fresh, err := m.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, "Sarapan", fresh[0].Name)
	assert.InDelta(t, 200.0, fresh[0].Ingredients[0].Weight, 1e-9)
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	t.Parallel()

	m := NewManager(20*time.Millisecond, nil)
	stale := m.Create()
	m.Create()

	time.Sleep(40 * time.Millisecond)

	fresh := m.Create()

	removed := m.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Len())

	_, err := m.Snapshot(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Snapshot(fresh.ID)
	assert.NoError(t, err)
}
