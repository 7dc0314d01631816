package reference

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LoadFile ingests a local CSV or XLSX table, picking the format from the
// file extension.
func LoadFile(path, sheet string, mapping ColumnMapping, logger *zap.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadWorkbook(f, sheet, mapping, logger)
	}
	return LoadCSV(f, mapping, logger)
}
