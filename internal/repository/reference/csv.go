package reference

import (
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// LoadCSV ingests a comma-separated table from the reader.
func LoadCSV(r io.Reader, mapping ColumnMapping, logger *zap.Logger) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return Build(rows, mapping, logger)
}
