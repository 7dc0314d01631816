package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
	"github.com/dedik2urniawan/fct-engine/internal/repository/factors"
	"github.com/dedik2urniawan/fct-engine/internal/repository/reference"
	"github.com/dedik2urniawan/fct-engine/internal/service/adequacy"
	"github.com/dedik2urniawan/fct-engine/internal/service/composition"
	"github.com/dedik2urniawan/fct-engine/internal/service/export"
	"github.com/dedik2urniawan/fct-engine/internal/session"
)

const workbookFilename = "Hasil_FCT_TKPI.xlsx"

// EvaluationHandler runs the calculation pipeline for a session: per-
// ingredient resolution, menu aggregation, AKG comparison, and the
// downloadable workbook.
type EvaluationHandler struct {
	sessions    *session.Manager
	refStore    *reference.Store
	factorStore *factors.Store
	evaluator   *adequacy.Evaluator
	rda         *adequacy.Reference
	exporter    *export.Service
	logger      *zap.Logger
}

// NewEvaluationHandler constructs the calculation handler.
func NewEvaluationHandler(
	sessions *session.Manager,
	refStore *reference.Store,
	factorStore *factors.Store,
	evaluator *adequacy.Evaluator,
	rda *adequacy.Reference,
	exporter *export.Service,
	logger *zap.Logger,
) *EvaluationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationHandler{
		sessions:    sessions,
		refStore:    refStore,
		factorStore: factorStore,
		evaluator:   evaluator,
		rda:         rda,
		exporter:    exporter,
		logger:      logger,
	}
}

type evaluateRequest struct {
	Selection models.IntakeSelection `json:"selection"`
	AgeBand   string                 `json:"age_band"`
	Sex       string                 `json:"sex"`
	AllGroups bool                   `json:"all_groups"`
}

// Compute resolves every ingredient of the session and returns the full
// correction trail with per-menu totals.
func (h *EvaluationHandler) Compute(c *gin.Context) {
	_, result, _, ok := h.computeSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Evaluate derives a daily intake from the selection and compares it
// against the chosen demographic group (or every group at once).
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, result, svc, ok := h.computeSession(c)
	if !ok {
		return
	}

	intake, err := svc.DailyIntake(result, req.Selection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.AllGroups {
		c.JSON(http.StatusOK, gin.H{
			"intake":      intake,
			"evaluations": h.evaluator.EvaluateAll(intake, h.rda),
		})
		return
	}

	row, err := h.rda.LookupGroup(req.AgeBand, req.Sex)
	if err != nil {
		if errors.Is(err, adequacy.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"intake":     intake,
		"evaluation": h.evaluator.Evaluate(intake, row),
	})
}

// Groups lists the available demographic groups.
func (h *EvaluationHandler) Groups(c *gin.Context) {
	c.JSON(http.StatusOK, h.rda.Rows())
}

// Export streams the multi-sheet results workbook. The request body matches
// Evaluate; when an age band is supplied the achievement sheets are
// included.
func (h *EvaluationHandler) Export(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menus, result, svc, ok := h.computeSession(c)
	if !ok {
		return
	}

	table := h.refStore.Current()
	data := export.Data{
		Menus:        menus,
		Result:       result,
		NutrientKeys: table.Nutrients(),
		Factors:      h.factorStore.Current().Rows(),
		Reference:    h.rda.Rows(),
	}

	if req.AgeBand != "" {
		intake, err := svc.DailyIntake(result, req.Selection)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		row, err := h.rda.LookupGroup(req.AgeBand, req.Sex)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		canonical, _ := adequacy.CanonicalIntake(intake)
		evaluation := h.evaluator.Evaluate(intake, row)
		data.Intake = canonical
		data.Evaluation = &evaluation
	}

	workbook, err := h.exporter.Workbook(data)
	if err != nil {
		h.logger.Error("workbook assembly failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+workbookFilename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("workbook write failed", zap.Error(err))
	}
}

// computeSession snapshots the session and runs the pipeline against the
// current table and factor snapshots. Returns ok=false after writing the
// error response.
func (h *EvaluationHandler) computeSession(c *gin.Context) ([]models.MenuEntry, composition.Result, *composition.Service, bool) {
	menus, err := h.sessions.Snapshot(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, composition.Result{}, nil, false
	}

	table := h.refStore.Current()
	if table == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reference table not loaded"})
		return nil, composition.Result{}, nil, false
	}

	resolver := composition.NewResolver(table, h.factorStore.Current(), h.logger)
	svc := composition.NewService(resolver, h.logger)
	return menus, svc.Compute(menus), svc, true
}
