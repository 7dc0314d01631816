package factors

import "sort"

// FactorRow is one effective factor entry, suitable for tabular export.
type FactorRow struct {
	Method     string  `json:"method"`
	Axis       string  `json:"axis"`
	Factor     float64 `json:"factor"`
	Overridden bool    `json:"overridden"`
}

// Rows lists the effective factor table: defaults merged with overrides,
// override winning per key, sorted by method then axis.
func (s *Set) Rows() []FactorRow {
	merged := make(map[Key]FactorRow, len(s.defaults)+len(s.overrides))
	for k, f := range s.defaults {
		merged[k] = FactorRow{Method: k.Method, Axis: k.Axis, Factor: f}
	}
	for k, f := range s.overrides {
		merged[k] = FactorRow{Method: k.Method, Axis: k.Axis, Factor: f, Overridden: true}
	}

	out := make([]FactorRow, 0, len(merged))
	for _, row := range merged {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Axis < out[j].Axis
	})
	return out
}
