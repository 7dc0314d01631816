package adequacy

import (
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// Achievement status buckets. Undefined marks a nutrient whose target is
// zero or missing: a legitimate result, distinct from 0% achievement.
const (
	StatusDeficit   = "deficit"
	StatusAdequate  = "adequate"
	StatusSurplus   = "surplus"
	StatusUndefined = "undefined"
)

// Achievement is one nutrient's intake compared against its RDA target.
// Percent and Gap are nil exactly when the target is undefined; the JSON
// null keeps the sentinel distinct from a numeric zero for consumers.
type Achievement struct {
	Nutrient string   `json:"nutrient"`
	Target   float64  `json:"target"`
	Intake   float64  `json:"intake"`
	Percent  *float64 `json:"percent"`
	Gap      *float64 `json:"gap"`
	Status   string   `json:"status"`
}

// Evaluation is the full comparison of a daily intake against one RDA row.
type Evaluation struct {
	Group        string        `json:"group"`
	AgeBand      string        `json:"age_band"`
	Sex          string        `json:"sex"`
	Results      []Achievement `json:"results"`
	NotEvaluated []string      `json:"not_evaluated,omitempty"`
}

// Evaluator compares intake vectors against RDA rows.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator wires an evaluator instance.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Evaluate produces per-nutrient percentage-of-target values in the fixed
// AKG column order. Division by zero is avoided structurally: a zero target
// yields the Undefined sentinel, never NaN or a panic.
func (e *Evaluator) Evaluate(intake models.NutrientVector, target models.RDARow) Evaluation {
	canonical, unmatched := CanonicalIntake(intake)

	results := make([]Achievement, 0, len(TargetNutrients))
	for _, nutrient := range TargetNutrients {
		tgt, hasTarget := target.Targets[nutrient]
		val := canonical[nutrient]

		a := Achievement{Nutrient: nutrient, Target: tgt, Intake: val}
		if !hasTarget || tgt == 0 {
			a.Status = StatusUndefined
		} else {
			pct := val / tgt * 100
			gap := val - tgt
			a.Percent = &pct
			a.Gap = &gap
			a.Status = classify(pct)
		}
		results = append(results, a)
	}

	e.logger.Debug("intake evaluated",
		zap.String("group", target.Group),
		zap.Int("not_evaluated", len(unmatched)))

	return Evaluation{
		Group:        target.Group,
		AgeBand:      target.AgeBand,
		Sex:          target.Sex,
		Results:      results,
		NotEvaluated: unmatched,
	}
}

// EvaluateAll runs the comparison against every reference row, mirroring
// the all-groups achievement table of the original tool.
func (e *Evaluator) EvaluateAll(intake models.NutrientVector, ref *Reference) []Evaluation {
	rows := ref.Rows()
	out := make([]Evaluation, 0, len(rows))
	for _, row := range rows {
		out = append(out, e.Evaluate(intake, row))
	}
	return out
}

// classify buckets an achievement percentage: under 90% is a deficit,
// 90-120% adequate, above 120% a surplus.
func classify(percent float64) string {
	switch {
	case percent < 90:
		return StatusDeficit
	case percent <= 120:
		return StatusAdequate
	default:
		return StatusSurplus
	}
}
