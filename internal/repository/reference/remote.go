package reference

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/pkg/fetch"
)

// LoadURL downloads a remote CSV or XLSX table and ingests it. The format is
// picked from the URL extension first, then the response content type;
// anything unrecognized is tried as CSV.
func LoadURL(ctx context.Context, client fetch.Client, url, sheet string, mapping ColumnMapping, logger *zap.Logger) (*Table, error) {
	body, contentType, err := client.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", url)
	}

	if isWorkbook(url, contentType) {
		return LoadWorkbook(bytes.NewReader(body), sheet, mapping, logger)
	}
	return LoadCSV(bytes.NewReader(body), mapping, logger)
}

func isWorkbook(url, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(url), ".xlsx") {
		return true
	}
	return strings.Contains(contentType, "spreadsheetml")
}
