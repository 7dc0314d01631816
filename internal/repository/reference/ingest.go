package reference

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

const defaultEdiblePortionPct = 100

// Build ingests a rectangular table (header row first) into an immutable
// snapshot. The identifier column is required; a missing display-name column
// falls back to the identifier, a missing edible-portion column defaults
// every record to 100%. Non-numeric nutrient cells coerce to zero and are
// counted in the load stats.
func Build(rows [][]string, mapping ColumnMapping, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(rows) == 0 {
		return nil, errors.New("reference table source is empty")
	}

	mapping = mapping.Normalize()
	if mapping.ID == "" {
		return nil, &SchemaError{Column: "id"}
	}

	header := indexHeader(rows[0])

	idCol, ok := header[mapping.ID]
	if !ok {
		return nil, &SchemaError{Column: mapping.ID}
	}
	nameCol, hasName := header[mapping.Name]
	groupCol, hasGroup := header[mapping.Group]
	bddCol, hasBDD := header[mapping.EdiblePortion]

	nutrients := resolveNutrientColumns(mapping, header)
	if len(nutrients) == 0 {
		return nil, errors.New("no nutrient column could be mapped")
	}

	var stats LoadStats
	records := make(map[string]models.FoodRecord, len(rows)-1)

	for _, row := range rows[1:] {
		id := cell(row, idCol)
		if id == "" {
			stats.SkippedRows++
			continue
		}
		if _, exists := records[id]; exists {
			stats.Duplicates++
			continue
		}

		rec := models.FoodRecord{
			ID:               id,
			Name:             id,
			EdiblePortionPct: defaultEdiblePortionPct,
			Nutrients:        make(models.NutrientVector, len(nutrients)),
		}
		if hasName {
			if name := cell(row, nameCol); name != "" {
				rec.Name = name
			}
		}
		if hasGroup {
			rec.Group = cell(row, groupCol)
		}
		if hasBDD {
			if raw := cell(row, bddCol); raw != "" {
				if bdd, err := parseNumber(raw); err == nil {
					rec.EdiblePortionPct = bdd
				} else {
					stats.CoercedCells++
				}
			}
		}

		for _, nc := range nutrients {
			raw := cell(row, nc.col)
			if raw == "" {
				rec.Nutrients[nc.key] = 0
				continue
			}
			value, err := parseNumber(raw)
			if err != nil {
				stats.CoercedCells++
				value = 0
			}
			rec.Nutrients[nc.key] = value
		}

		records[id] = rec
		stats.Rows++
	}

	keys := make([]string, len(nutrients))
	for i, nc := range nutrients {
		keys[i] = nc.key
	}

	logger.Info("reference table ingested",
		zap.Int("rows", stats.Rows),
		zap.Int("nutrients", len(keys)),
		zap.Int("skipped_rows", stats.SkippedRows),
		zap.Int("coerced_cells", stats.CoercedCells),
		zap.Int("duplicates", stats.Duplicates))

	return newTable(records, keys, stats), nil
}

type nutrientColumn struct {
	key string
	col int
}

// resolveNutrientColumns keeps only the mapped nutrient columns actually
// present in the header, in a stable order: the well-known keys first, then
// any custom ones alphabetically.
func resolveNutrientColumns(mapping ColumnMapping, header map[string]int) []nutrientColumn {
	seen := map[string]bool{}
	var out []nutrientColumn

	appendKey := func(key string) {
		if seen[key] {
			return
		}
		if col, ok := header[mapping.Nutrients[key]]; ok {
			out = append(out, nutrientColumn{key: key, col: col})
			seen[key] = true
		}
	}

	for _, key := range nutrientOrder {
		if _, mapped := mapping.Nutrients[key]; mapped {
			appendKey(key)
		}
	}

	var extras []string
	for key := range mapping.Nutrients {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		appendKey(key)
	}

	return out
}

func indexHeader(row []string) map[string]int {
	idx := make(map[string]int, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, exists := idx[h]; !exists {
			idx[h] = i
		}
	}
	return idx
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseNumber accepts decimal commas alongside decimal points; TKPI exports
// use both depending on locale.
func parseNumber(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	return strconv.ParseFloat(raw, 64)
}
