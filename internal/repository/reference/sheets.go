package reference

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dedik2urniawan/fct-engine/internal/config"
)

// SheetSource reads the food composition table out of a Google Sheets
// range. Read-only; the table itself stays authoritative in the sheet.
type SheetSource struct {
	service       *sheetsapi.Service
	spreadsheetID string
	readRange     string
	logger        *zap.Logger
}

// NewSheetSource builds a Google Sheets backed table source.
func NewSheetSource(ctx context.Context, cfg config.ReferenceConfig, logger *zap.Logger) (*SheetSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SheetSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.SheetRange,
		logger:        logger,
	}, nil
}

// Load fetches the configured range and ingests it.
func (s *SheetSource) Load(ctx context.Context, mapping ColumnMapping) (*Table, error) {
	if s.readRange == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", s.readRange, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}

	s.logger.Debug("sheet range fetched", zap.String("range", s.readRange), zap.Int("rows", len(rows)))
	return Build(rows, mapping, s.logger)
}
