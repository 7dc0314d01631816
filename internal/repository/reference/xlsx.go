package reference

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// LoadWorkbook ingests an XLSX workbook from the reader. An empty sheet name
// selects the first sheet, matching how the upstream TKPI workbook ships.
func LoadWorkbook(r io.Reader, sheet string, mapping ColumnMapping, logger *zap.Logger) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return Build(rows, mapping, logger)
}
