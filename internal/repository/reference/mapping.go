package reference

import "strings"

// ColumnMapping maps the canonical field names onto the headers actually
// present in a source table. The mapping is supplied by the caller (the
// column-mapping UI in a full deployment); DefaultTKPIMapping matches the
// published TKPI 2017 headers.
type ColumnMapping struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Group         string            `json:"group,omitempty"`
	EdiblePortion string            `json:"edible_portion,omitempty"`
	Nutrients     map[string]string `json:"nutrients"`
}

// nutrientOrder fixes the column order used for exports and for the
// canonical nutrient list; Go map iteration would shuffle it otherwise.
var nutrientOrder = []string{
	"ENERGI", "PROTEIN", "LEMAK", "KH", "SERAT", "AIR",
	"KALSIUM", "BESI", "SENG", "KALIUM", "NATRIUM",
	"VIT_C", "THIAMIN", "RIBOFLAVIN", "NIASIN", "B6", "FOLAT", "B12",
	"VIT A RE", "VIT RAE", "RETINOL", "B-KAR", "KARTOTAL",
}

// DefaultTKPIMapping returns the mapping for an unmodified TKPI 2017 sheet.
func DefaultTKPIMapping() ColumnMapping {
	return ColumnMapping{
		ID:            "KODE BARU",
		Name:          "NAMA BAHAN MENTAH",
		Group:         "KELOMPOK",
		EdiblePortion: "BDD",
		Nutrients: map[string]string{
			"ENERGI":     "ENERGI",
			"PROTEIN":    "PROTEIN",
			"LEMAK":      "LEMAK",
			"KH":         "KH",
			"SERAT":      "SERAT",
			"AIR":        "AIR",
			"KALSIUM":    "KALSIUM",
			"BESI":       "BESI",
			"SENG":       "SENG",
			"KALIUM":     "KALIUM",
			"NATRIUM":    "NATRIUM",
			"VIT_C":      "VIT_C",
			"THIAMIN":    "THIAMIN",
			"RIBOFLAVIN": "RIBOFLAVIN",
			"NIASIN":     "NIASIN",
			"B6":         "B6",
			"FOLAT":      "Folat",
			"B12":        "B12",
			"VIT A RE":   "Vit A RE",
			"VIT RAE":    "Vit RAE",
			"RETINOL":    "RETINOL (RE)",
			"B-KAR":      "B-KAR (mcg)",
			"KARTOTAL":   "KARTOTAL (mcg)",
		},
	}
}

// Normalize trims every header value and drops empty nutrient mappings so a
// partially filled mapping payload behaves like an unmapped column.
func (m ColumnMapping) Normalize() ColumnMapping {
	out := ColumnMapping{
		ID:            strings.TrimSpace(m.ID),
		Name:          strings.TrimSpace(m.Name),
		Group:         strings.TrimSpace(m.Group),
		EdiblePortion: strings.TrimSpace(m.EdiblePortion),
		Nutrients:     map[string]string{},
	}
	for key, header := range m.Nutrients {
		key = strings.ToUpper(strings.TrimSpace(key))
		header = strings.TrimSpace(header)
		if key == "" || header == "" {
			continue
		}
		out.Nutrients[key] = header
	}
	return out
}
