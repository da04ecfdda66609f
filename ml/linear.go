package ml

import (
	"context"
	"errors"
	"fmt"
)

// LinearModel is an ordinary least squares fit exported as JSON.
type LinearModel struct {
	Names        []string      `json:"feature_names"`
	Intercept    float64       `json:"intercept"`
	Coefficients []float64     `json:"coefficients"`
	Scaler       *MinMaxScaler `json:"scaler,omitempty"`
}

// Predict applies the optional scaler, then the intercept and coefficients.
func (m *LinearModel) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.Coefficients) == 0 {
		return 0, ErrModelUnavailable
	}
	if len(features) != len(m.Coefficients) {
		return 0, ErrFeatureWidth
	}
	if m.Scaler != nil {
		scaled, err := m.Scaler.Transform(features)
		if err != nil {
			return 0, err
		}
		features = scaled
	}
	y := m.Intercept
	for i, x := range features {
		y += m.Coefficients[i] * x
	}
	return y, nil
}

// FeatureNames returns a copy of the artifact column names.
func (m *LinearModel) FeatureNames() []string {
	return append([]string(nil), m.Names...)
}

// Load reads and checks a linear artifact.
func (m *LinearModel) Load(path string) error {
	var loaded LinearModel
	if err := readJSON(path, &loaded); err != nil {
		return err
	}
	if len(loaded.Coefficients) == 0 {
		return errors.New("linear model has no coefficients")
	}
	if len(loaded.Names) > 0 && len(loaded.Names) != len(loaded.Coefficients) {
		return fmt.Errorf("linear model has %d names for %d coefficients", len(loaded.Names), len(loaded.Coefficients))
	}
	if loaded.Scaler != nil {
		if err := loaded.Scaler.validate(len(loaded.Coefficients)); err != nil {
			return err
		}
	}
	*m = loaded
	return nil
}
