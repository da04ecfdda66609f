package ml

import (
	"errors"
	"fmt"
)

// MinMaxScaler maps each feature onto [0, 1] using the ranges seen at
// training time. Models exported from a scaled pipeline carry one.
type MinMaxScaler struct {
	Mins []float64 `json:"mins"`
	Maxs []float64 `json:"maxs"`
}

func (s *MinMaxScaler) validate(width int) error {
	if len(s.Mins) != len(s.Maxs) {
		return errors.New("scaler mins/maxs length mismatch")
	}
	if len(s.Mins) != width {
		return fmt.Errorf("scaler has %d ranges for %d features", len(s.Mins), width)
	}
	return nil
}

// Transform returns a scaled copy; the input is left untouched.
func (s *MinMaxScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.Mins) || len(values) != len(s.Maxs) {
		return nil, ErrFeatureWidth
	}
	result := make([]float64, len(values))
	for i := range values {
		result[i] = normalizeFeature(values[i], s.Mins[i], s.Maxs[i])
	}
	return result, nil
}

func normalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}
