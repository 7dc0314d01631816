package models

// NutrientVector maps a canonical nutrient key to an amount. The unit of each
// amount is whatever the reference table declares for that column (kcal, g,
// mg, mcg); the engine only ever scales and sums within one key.
type NutrientVector map[string]float64

// Clone returns an independent copy of the vector.
func (v NutrientVector) Clone() NutrientVector {
	out := make(NutrientVector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Add accumulates every amount of other into v, creating keys as needed.
func (v NutrientVector) Add(other NutrientVector) {
	for k, val := range other {
		v[k] += val
	}
}

// Sum returns the pointwise sum of the given vectors. Keys absent from every
// vector are absent from the result; keys present anywhere start from zero.
func Sum(vectors ...NutrientVector) NutrientVector {
	total := NutrientVector{}
	for _, v := range vectors {
		total.Add(v)
	}
	return total
}
