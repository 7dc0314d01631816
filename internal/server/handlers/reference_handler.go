package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/config"
	"github.com/dedik2urniawan/fct-engine/internal/repository/factors"
	"github.com/dedik2urniawan/fct-engine/internal/repository/reference"
	"github.com/dedik2urniawan/fct-engine/pkg/fetch"
)

// SheetLoader abstracts the Google Sheets table source; nil when no sheet
// is configured.
type SheetLoader interface {
	Load(ctx context.Context, mapping reference.ColumnMapping) (*reference.Table, error)
}

// ReferenceHandler manages the food composition table and the correction
// factor tables.
type ReferenceHandler struct {
	store       *reference.Store
	factorStore *factors.Store
	sheets      SheetLoader
	fetcher     fetch.Client
	cfg         config.ReferenceConfig
	logger      *zap.Logger
}

// NewReferenceHandler constructs the table management handler.
func NewReferenceHandler(store *reference.Store, factorStore *factors.Store, sheets SheetLoader, fetcher fetch.Client, cfg config.ReferenceConfig, logger *zap.Logger) *ReferenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceHandler{
		store:       store,
		factorStore: factorStore,
		sheets:      sheets,
		fetcher:     fetcher,
		cfg:         cfg,
		logger:      logger,
	}
}

// Upload ingests an uploaded CSV or XLSX table. The multipart form takes the
// file under "file", an optional "mapping" JSON document, and an optional
// "sheet" name for workbooks. The new table replaces the old one atomically.
func (h *ReferenceHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	mapping := reference.DefaultTKPIMapping()
	if raw := c.PostForm("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mapping payload"})
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer func() { _ = src.Close() }()

	var table *reference.Table
	if strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		table, err = reference.LoadWorkbook(src, c.PostForm("sheet"), mapping, h.logger)
	} else {
		table, err = reference.LoadCSV(src, mapping, h.logger)
	}
	if err != nil {
		h.respondLoadError(c, err)
		return
	}

	h.store.Swap(table)
	h.logger.Info("reference table replaced via upload",
		zap.String("filename", fileHeader.Filename),
		zap.Int("rows", table.Len()))

	c.JSON(http.StatusOK, gin.H{"rows": table.Len(), "warnings": table.Stats()})
}

// Reload re-ingests the table from the configured startup source.
func (h *ReferenceHandler) Reload(c *gin.Context) {
	table, err := h.LoadConfigured(c.Request.Context())
	if err != nil {
		h.respondLoadError(c, err)
		return
	}

	h.store.Swap(table)
	c.JSON(http.StatusOK, gin.H{"rows": table.Len(), "warnings": table.Stats()})
}

// Status reports the loaded snapshot's shape and ingest warnings.
func (h *ReferenceHandler) Status(c *gin.Context) {
	table := h.store.Current()
	if table == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reference table not loaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":      table.Len(),
		"nutrients": table.Nutrients(),
		"loaded_at": table.LoadedAt(),
		"warnings":  table.Stats(),
	})
}

// SearchFoods looks up foods by identifier or name substring.
func (h *ReferenceHandler) SearchFoods(c *gin.Context) {
	table := h.store.Current()
	if table == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reference table not loaded"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	c.JSON(http.StatusOK, table.Search(c.Query("q"), limit))
}

// UploadFactors replaces the override correction-factor layer from an
// uploaded CSV of (method, axis, factor) rows.
func (h *ReferenceHandler) UploadFactors(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer func() { _ = src.Close() }()

	overrides, skipped, err := factors.ParseOverridesCSV(src, h.logger)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.factorStore.Swap(h.factorStore.Current().WithOverrides(overrides))
	h.logger.Info("factor overrides replaced",
		zap.Int("overrides", len(overrides)),
		zap.Int("skipped_rows", skipped))

	c.JSON(http.StatusOK, gin.H{"overrides": len(overrides), "skipped_rows": skipped})
}

// ListFactors returns the effective factor table.
func (h *ReferenceHandler) ListFactors(c *gin.Context) {
	c.JSON(http.StatusOK, h.factorStore.Current().Rows())
}

// LoadConfigured loads the startup source: a local file wins over a remote
// URL, which wins over a Google Sheets range. Also used at boot.
func (h *ReferenceHandler) LoadConfigured(ctx context.Context) (*reference.Table, error) {
	mapping := reference.DefaultTKPIMapping()

	switch {
	case h.cfg.FilePath != "":
		return reference.LoadFile(h.cfg.FilePath, h.cfg.FileSheet, mapping, h.logger)
	case h.cfg.URL != "":
		return reference.LoadURL(ctx, h.fetcher, h.cfg.URL, h.cfg.FileSheet, mapping, h.logger)
	case h.sheets != nil:
		return h.sheets.Load(ctx, mapping)
	default:
		return nil, errors.New("no reference source configured")
	}
}

func (h *ReferenceHandler) respondLoadError(c *gin.Context, err error) {
	var schemaErr *reference.SchemaError
	if errors.As(err, &schemaErr) {
		h.logger.Warn("reference load rejected", zap.String("column", schemaErr.Column))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "column": schemaErr.Column})
		return
	}

	h.logger.Error("reference load failed", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
