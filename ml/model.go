package ml

import (
	"context"
	"errors"
)

var (
	ErrModelUnavailable = errors.New("model not loaded")
	ErrFeatureWidth     = errors.New("feature vector has wrong width")
	ErrFeatureOrder     = errors.New("model features do not match the expected columns")
)

// Regressor predicts one value for one row of features. Loaded models are
// read-only and safe to share between requests.
type Regressor interface {
	Predict(ctx context.Context, features []float64) (float64, error)
	FeatureNames() []string
}

func checkWidth(features []float64, names []string) error {
	if len(names) > 0 && len(features) != len(names) {
		return ErrFeatureWidth
	}
	return nil
}
