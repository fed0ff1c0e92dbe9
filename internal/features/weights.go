package features

// Weights maps a feature name to its importance in similarity scoring.
// Features missing from the table are never compared.
type Weights map[string]float64

// DefaultWeights returns a fresh copy of the standard weight table.
func DefaultWeights() Weights {
	return Weights{
		"ram":               0.8,
		"storage":           0.7,
		"processor":         0.9,
		"screen_size":       0.6,
		"resolution":        0.5,
		"battery":           0.4,
		"brand":             0.3,
		"color":             0.2,
		"bluetooth":         0.3,
		"waterproof":        0.3,
		"wireless":          0.3,
		"noise_cancelling":  0.4,
		"material":          0.3,
		"weight":            0.3,
		"category_keywords": 0.6,
	}
}

// Weight returns the weight for name and whether it is in the table.
func (w Weights) Weight(name string) (float64, bool) {
	v, ok := w[name]
	return v, ok
}
