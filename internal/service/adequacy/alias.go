package adequacy

import (
	"sort"
	"strings"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// intakeAliases bridges the composition-table nutrient keys onto the AKG
// target variables. Matching is case-insensitive.
var intakeAliases = map[string]string{
	"ENERGI":      "Energi",
	"ENERGY":      "Energi",
	"KCAL":        "Energi",
	"PROTEIN":     "Protein",
	"LEMAK":       "Lemak_total",
	"LEMAK_TOTAL": "Lemak_total",
	"FAT":         "Lemak_total",
	"OMEGA3":      "Omega3",
	"OMEGA-3":     "Omega3",
	"OMEGA6":      "Omega6",
	"OMEGA-6":     "Omega6",
	"KH":          "Karbohidrat",
	"KARBOHIDRAT": "Karbohidrat",
	"CARB":        "Karbohidrat",
	"SERAT":       "Serat",
	"FIBER":       "Serat",
	"AIR":         "Air",
	"WATER":       "Air",
}

// CanonicalIntake folds an intake vector onto the AKG target keys. Amounts
// whose key maps to the same target are summed. The second return value
// lists the intake keys that map onto no target at all — those are reported
// as "not evaluated", never dropped silently.
func CanonicalIntake(intake models.NutrientVector) (models.NutrientVector, []string) {
	canonical := models.NutrientVector{}
	var unmatched []string

	for key, amount := range intake {
		if target, ok := intakeAliases[strings.ToUpper(strings.TrimSpace(key))]; ok {
			canonical[target] += amount
			continue
		}
		unmatched = append(unmatched, key)
	}

	sort.Strings(unmatched)
	return canonical, unmatched
}
