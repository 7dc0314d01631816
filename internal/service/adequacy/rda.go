package adequacy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

// ErrGroupNotFound is a usage error: the caller picked a demographic group
// that does not exist. It is surfaced, never silently defaulted.
var ErrGroupNotFound = errors.New("no RDA row matches the demographic group")

// TargetNutrients is the fixed column order of the AKG reference table.
var TargetNutrients = []string{
	"Energi", "Protein", "Lemak_total", "Omega3", "Omega6", "Karbohidrat", "Serat", "Air",
}

// Reference holds the static RDA rows. Age bands are disjoint and fixed;
// every band except 7-9 splits by sex.
type Reference struct {
	rows []models.RDARow
}

// DefaultReference returns the bundled AKG 2019 rows for school-age groups.
func DefaultReference() *Reference {
	return &Reference{rows: []models.RDARow{
		akgRow("Anak 7-9 th", "7-9", models.SexAny, 1650, 40, 55, 0.9, 10, 250, 23, 1650),
		akgRow("Laki-laki 10-12 th", "10-12", models.SexMale, 2000, 50, 65, 1.2, 12, 300, 28, 1850),
		akgRow("Laki-laki 13-15 th", "13-15", models.SexMale, 2400, 70, 80, 1.6, 16, 350, 34, 2100),
		akgRow("Laki-laki 16-18 th", "16-18", models.SexMale, 2650, 75, 85, 1.6, 16, 400, 37, 2300),
		akgRow("Perempuan 10-12 th", "10-12", models.SexFemale, 1900, 55, 65, 1.0, 10, 280, 27, 1850),
		akgRow("Perempuan 13-15 th", "13-15", models.SexFemale, 2050, 65, 70, 1.1, 11, 300, 29, 2100),
		akgRow("Perempuan 16-18 th", "16-18", models.SexFemale, 2100, 65, 70, 1.1, 11, 300, 29, 2150),
	}}
}

func akgRow(group, ageBand, sex string, energi, protein, lemak, omega3, omega6, kh, serat, air float64) models.RDARow {
	return models.RDARow{
		Group:   group,
		AgeBand: ageBand,
		Sex:     sex,
		Targets: models.NutrientVector{
			"Energi":      energi,
			"Protein":     protein,
			"Lemak_total": lemak,
			"Omega3":      omega3,
			"Omega6":      omega6,
			"Karbohidrat": kh,
			"Serat":       serat,
			"Air":         air,
		},
	}
}

// Rows lists every reference row in table order.
func (r *Reference) Rows() []models.RDARow {
	out := make([]models.RDARow, len(r.rows))
	copy(out, r.rows)
	return out
}

// LookupGroup returns the single row matching an age band and sex. Bands
// without a sex split match any sex value.
func (r *Reference) LookupGroup(ageBand, sex string) (models.RDARow, error) {
	band := strings.TrimSpace(ageBand)
	sexCode := strings.ToUpper(strings.TrimSpace(sex))

	for _, row := range r.rows {
		if row.AgeBand != band {
			continue
		}
		if row.Sex == models.SexAny || row.Sex == sexCode {
			return row, nil
		}
	}
	return models.RDARow{}, fmt.Errorf("%w: age_band=%q sex=%q", ErrGroupNotFound, ageBand, sex)
}
