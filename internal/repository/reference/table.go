package reference

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// ErrUnknownFood is returned when a food identifier is absent from the
// loaded table.
var ErrUnknownFood = errors.New("food not found in reference table")

// SchemaError reports a required column that could not be mapped onto the
// source headers. It is fatal to the whole load.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q not found in reference table", e.Column)
}

// LoadStats summarizes what happened during an ingest. Everything here is a
// warning, not an error; malformed cells degrade to zero instead of aborting
// the load.
type LoadStats struct {
	Rows         int `json:"rows"`
	SkippedRows  int `json:"skipped_rows"`
	CoercedCells int `json:"coerced_cells"`
	Duplicates   int `json:"duplicates"`
}

// Table is an immutable snapshot of the food composition table. All lookups
// are in-memory map accesses; a reload builds a fresh Table and swaps it in
// through a Store.
type Table struct {
	records   map[string]models.FoodRecord
	order     []string
	nutrients []string
	stats     LoadStats
	loadedAt  time.Time
}

// Lookup returns the record for the given food identifier.
func (t *Table) Lookup(foodID string) (models.FoodRecord, error) {
	rec, ok := t.records[strings.TrimSpace(foodID)]
	if !ok {
		return models.FoodRecord{}, fmt.Errorf("%w: %s", ErrUnknownFood, foodID)
	}
	return rec, nil
}

// Nutrients lists the canonical nutrient keys this table carries. Resolved
// ingredients produce exactly this set, nothing more.
func (t *Table) Nutrients() []string {
	out := make([]string, len(t.nutrients))
	copy(out, t.nutrients)
	return out
}

// Search returns up to limit records whose identifier or display name
// contains the query, case-insensitively. An empty query lists from the top.
func (t *Table) Search(query string, limit int) []models.FoodRecord {
	if limit <= 0 {
		limit = 25
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var out []models.FoodRecord
	for _, id := range t.order {
		rec := t.records[id]
		if q == "" || strings.Contains(strings.ToLower(rec.ID), q) || strings.Contains(strings.ToLower(rec.Name), q) {
			out = append(out, rec)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Len reports the number of food records.
func (t *Table) Len() int {
	return len(t.records)
}

// Stats returns the ingest warnings recorded while building this snapshot.
func (t *Table) Stats() LoadStats {
	return t.stats
}

// LoadedAt reports when this snapshot was built.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

func newTable(records map[string]models.FoodRecord, nutrients []string, stats LoadStats) *Table {
	order := make([]string, 0, len(records))
	for id := range records {
		order = append(order, id)
	}
	sort.Strings(order)

	return &Table{
		records:   records,
		order:     order,
		nutrients: nutrients,
		stats:     stats,
		loadedAt:  time.Now(),
	}
}

// Store publishes the current table snapshot. Reload swaps the pointer
// atomically so in-flight calculations observe either the old or the new
// table, never a partially updated one.
type Store struct {
	current atomic.Pointer[Table]
}

// NewStore returns a store with no table loaded yet.
func NewStore() *Store {
	return &Store{}
}

// Current returns the active snapshot, or nil when nothing is loaded.
func (s *Store) Current() *Table {
	return s.current.Load()
}

// Swap publishes a new snapshot.
func (s *Store) Swap(t *Table) {
	s.current.Store(t)
}
