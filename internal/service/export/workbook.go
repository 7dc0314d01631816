package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
	"github.com/dedik2urniawan/fct-engine/internal/repository/factors"
	"github.com/dedik2urniawan/fct-engine/internal/service/adequacy"
	"github.com/dedik2urniawan/fct-engine/internal/service/composition"
)

// Data bundles everything a results workbook carries: the raw input rows,
// the full correction trail, the factor tables in force, the RDA reference,
// and (when an evaluation ran) the assessed intake and achievements.
type Data struct {
	Menus        []models.MenuEntry
	Result       composition.Result
	NutrientKeys []string
	Factors      []factors.FactorRow
	Reference    []models.RDARow
	Intake       models.NutrientVector
	Evaluation   *adequacy.Evaluation
}

// Service renders result workbooks for download.
type Service struct {
	logger *zap.Logger
}

// NewService wires an export service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Workbook builds the multi-sheet XLSX file. Sheet names mirror the
// original tool's download so downstream spreadsheets keep working.
func (s *Service) Workbook(data Data) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := s.writeInput(f, data.Menus); err != nil {
		return nil, err
	}
	if err := s.writePerIngredient(f, data); err != nil {
		return nil, err
	}
	if err := s.writePerMenu(f, data); err != nil {
		return nil, err
	}
	if err := s.writeFactors(f, data.Factors); err != nil {
		return nil, err
	}
	if err := s.writeReference(f, data.Reference); err != nil {
		return nil, err
	}
	if data.Evaluation != nil {
		if err := s.writeEvaluation(f, data); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	s.logger.Debug("workbook assembled",
		zap.Int("ingredients", len(data.Result.Ingredients)),
		zap.Int("menus", len(data.Result.Menus)))
	return f, nil
}

func (s *Service) writeInput(f *excelize.File, menus []models.MenuEntry) error {
	rows := [][]interface{}{{"Menu", "Food ID", "Weight", "Unit", "Method"}}
	for _, menu := range menus {
		for _, ing := range menu.Ingredients {
			unit := ing.Unit
			if unit == "" {
				unit = models.UnitGram
			}
			rows = append(rows, []interface{}{menu.Name, ing.FoodID, ing.Weight, string(unit), ing.Method})
		}
	}
	return writeSheet(f, "Input", rows)
}

func (s *Service) writePerIngredient(f *excelize.File, data Data) error {
	header := []interface{}{
		"Menu", "Food ID", "Food", "Method",
		"Input (g)", "BDD (%)", "Edible (g)", "Yield", "Final (g)",
	}
	for _, key := range data.NutrientKeys {
		header = append(header, key)
	}

	rows := [][]interface{}{header}
	for _, it := range data.Result.Ingredients {
		row := []interface{}{
			it.Menu, it.FoodID, it.FoodName, it.Method,
			it.InputGrams, it.EdiblePortionPct, it.EdibleGrams, it.YieldFactor, it.FinalGrams,
		}
		for _, key := range data.NutrientKeys {
			row = append(row, it.Nutrients[key])
		}
		rows = append(rows, row)
	}
	return writeSheet(f, "Per Bahan", rows)
}

func (s *Service) writePerMenu(f *excelize.File, data Data) error {
	header := []interface{}{"Menu"}
	for _, key := range data.NutrientKeys {
		header = append(header, key)
	}

	rows := [][]interface{}{header}
	for _, menu := range data.Result.Menus {
		row := []interface{}{menu.Menu}
		for _, key := range data.NutrientKeys {
			row = append(row, menu.Nutrients[key])
		}
		rows = append(rows, row)
	}
	return writeSheet(f, "Per Menu", rows)
}

func (s *Service) writeFactors(f *excelize.File, rows []factors.FactorRow) error {
	yield := [][]interface{}{{"Metode", "Yield"}}
	retention := [][]interface{}{{"Metode", "Nutrien", "Retensi", "Override"}}

	for _, row := range rows {
		if row.Axis == factors.AxisWeight {
			yield = append(yield, []interface{}{row.Method, row.Factor})
			continue
		}
		retention = append(retention, []interface{}{row.Method, row.Axis, row.Factor, row.Overridden})
	}

	if err := writeSheet(f, "Yield Factors", yield); err != nil {
		return err
	}
	return writeSheet(f, "Retention Factors", retention)
}

func (s *Service) writeReference(f *excelize.File, reference []models.RDARow) error {
	header := []interface{}{"Kelompok", "Age Band", "JK"}
	for _, n := range adequacy.TargetNutrients {
		header = append(header, n)
	}

	rows := [][]interface{}{header}
	for _, r := range reference {
		row := []interface{}{r.Group, r.AgeBand, r.Sex}
		for _, n := range adequacy.TargetNutrients {
			row = append(row, r.Targets[n])
		}
		rows = append(rows, row)
	}
	return writeSheet(f, "AKG_Referensi", rows)
}

func (s *Service) writeEvaluation(f *excelize.File, data Data) error {
	intakeHeader := make([]interface{}, 0, len(adequacy.TargetNutrients))
	intakeRow := make([]interface{}, 0, len(adequacy.TargetNutrients))
	for _, n := range adequacy.TargetNutrients {
		intakeHeader = append(intakeHeader, n)
		intakeRow = append(intakeRow, data.Intake[n])
	}
	if err := writeSheet(f, "Asupan_AKG", [][]interface{}{intakeHeader, intakeRow}); err != nil {
		return err
	}

	rows := [][]interface{}{{"Kelompok", "Nutrien", "Target", "Asupan", "Pencapaian (%)", "Gap", "Status"}}
	for _, a := range data.Evaluation.Results {
		// Undefined targets export as blank cells, never as zero.
		var pct, gap interface{}
		if a.Percent != nil {
			pct = *a.Percent
		}
		if a.Gap != nil {
			gap = *a.Gap
		}
		rows = append(rows, []interface{}{data.Evaluation.Group, a.Nutrient, a.Target, a.Intake, pct, gap, a.Status})
	}
	return writeSheet(f, "Pencapaian_AKG", rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
