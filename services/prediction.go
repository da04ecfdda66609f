package services

import (
	"context"
	"errors"

	"insurecost/insurance"
	"insurecost/logging"
	"insurecost/ml"
)

// PredictionStore is the write side of the persistence gateway.
type PredictionStore interface {
	InsertPrediction(ctx context.Context, rec *insurance.PredictionRecord) error
}

// Publisher is told about every record that was saved.
type Publisher interface {
	Publish(rec insurance.PredictionRecord)
}

// PredictionService turns one form submission into a stored prediction.
type PredictionService struct {
	model     ml.Regressor
	store     PredictionStore
	publisher Publisher
	log       *logging.Logger
}

// NewPredictionService wires the loaded model and the store. publisher may be nil.
func NewPredictionService(model ml.Regressor, store PredictionStore, publisher Publisher, log *logging.Logger) *PredictionService {
	if log == nil {
		log = logging.NewNop()
	}
	return &PredictionService{
		model:     model,
		store:     store,
		publisher: publisher,
		log:       log.With("service", "prediction"),
	}
}

// Predict encodes input, runs the model on that single row and returns the
// raw model output with the row. It does not validate and has no side effects.
func (s *PredictionService) Predict(ctx context.Context, input insurance.CustomerInput) (float64, insurance.EncodedFeatures, error) {
	features := input.Encode()
	if s.model == nil {
		return 0, features, &insurance.InferenceError{Features: features, Err: ml.ErrModelUnavailable}
	}
	charges, err := s.model.Predict(ctx, features.Vector())
	if err != nil {
		return 0, features, &insurance.InferenceError{Features: features, Err: err}
	}
	return charges, features, nil
}

// Submit handles one form submission: reject a blank name, predict, store,
// then publish. Nothing is stored when the model fails.
func (s *PredictionService) Submit(ctx context.Context, input insurance.CustomerInput) (*insurance.PredictionRecord, error) {
	if err := input.CheckName(); err != nil {
		s.log.Warn("submission rejected", "field", "name")
		return nil, err
	}
	name := input.TrimmedName()

	charges, features, err := s.Predict(ctx, input)
	if err != nil {
		s.log.Error("prediction failed", "error", err, "features", features)
		return nil, err
	}

	rec := insurance.NewPredictionRecord(name, features, charges)
	if s.store == nil {
		return nil, &insurance.StorageError{Op: "connect", Err: errors.New("no store configured")}
	}
	if err := s.store.InsertPrediction(ctx, &rec); err != nil {
		s.log.Error("saving prediction failed", "error", err)
		return nil, err
	}
	s.log.Info("prediction saved", "id", rec.ID, "predicted_charges", rec.PredictedCharges)

	if s.publisher != nil {
		s.publisher.Publish(rec)
	}
	return &rec, nil
}
