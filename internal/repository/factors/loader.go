package factors

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParseOverrides turns tabular (method, axis, factor) rows into an override
// map. The axis column takes WEIGHT or YIELD for the yield factor, ALL for
// the catch-all retention row, or a nutrient name. A leading header row is
// detected and skipped; rows with a non-numeric or non-positive factor are
// skipped with a warning count instead of failing the load.
func ParseOverrides(rows [][]string, logger *zap.Logger) (map[Key]float64, int) {
	if logger == nil {
		logger = zap.NewNop()
	}

	overrides := make(map[Key]float64)
	skipped := 0

	for i, row := range rows {
		if len(row) < 3 {
			skipped++
			continue
		}

		method := strings.TrimSpace(row[0])
		axis := strings.TrimSpace(row[1])
		factor, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[2]), ",", "."), 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			logger.Debug("skip override row with invalid factor", zap.Strings("row", row))
			skipped++
			continue
		}

		if method == "" || axis == "" || factor <= 0 {
			skipped++
			continue
		}

		if a := norm(axis); a == "YIELD" || a == AxisWeight {
			axis = AxisWeight
		}

		overrides[NewKey(method, axis)] = factor
	}

	return overrides, skipped
}

// ParseOverridesCSV reads (method, axis, factor) rows from a CSV stream.
func ParseOverridesCSV(r io.Reader, logger *zap.Logger) (map[Key]float64, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read override csv: %w", err)
	}

	overrides, skipped := ParseOverrides(rows, logger)
	return overrides, skipped, nil
}
