package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"insurecost/insurance"
	"insurecost/ml"
	"insurecost/report"
)

type fakeModel struct {
	calls int
	rows  [][]float64
	err   error
}

func (f *fakeModel) Predict(ctx context.Context, features []float64) (float64, error) {
	f.calls++
	f.rows = append(f.rows, append([]float64(nil), features...))
	if f.err != nil {
		return 0, f.err
	}
	// Deterministic, non-trivial function of the row.
	return 1000 + 250*features[0] + 100*features[1] + 300*features[2] + 500*features[3] + 24000*features[4], nil
}

func (f *fakeModel) FeatureNames() []string { return insurance.FeatureNames() }

type memoryStore struct {
	records []insurance.PredictionRecord
	err     error
}

func (m *memoryStore) InsertPrediction(ctx context.Context, rec *insurance.PredictionRecord) error {
	if m.err != nil {
		return m.err
	}
	rec.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *rec)
	return nil
}

func (m *memoryStore) FetchAllPredictions(ctx context.Context) ([]insurance.PredictionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]insurance.PredictionRecord{}, m.records...), nil
}

type recordingPublisher struct {
	published []insurance.PredictionRecord
}

func (p *recordingPublisher) Publish(rec insurance.PredictionRecord) {
	p.published = append(p.published, rec)
}

func budi() insurance.CustomerInput {
	return insurance.CustomerInput{Name: "Budi", Age: 30, Sex: insurance.SexMale, BMI: 25.0, Children: 0, Smoker: insurance.SmokerNo}
}

func TestPredictIsPure(t *testing.T) {
	model := &fakeModel{}
	svc := NewPredictionService(model, nil, nil, nil)

	first, features, err := svc.Predict(context.Background(), budi())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := svc.Predict(context.Background(), budi())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical predictions, got %f and %f", first, second)
	}
	want := insurance.EncodedFeatures{Age: 30, Sex: 1, BMI: 25.0, Children: 0, Smoker: 0}
	if features != want {
		t.Fatalf("expected %+v, got %+v", want, features)
	}
	row := model.rows[0]
	for i, v := range []float64{30, 1, 25.0, 0, 0} {
		if row[i] != v {
			t.Fatalf("model saw row %v", row)
		}
	}
}

func TestPredictWrapsModelFailure(t *testing.T) {
	cause := errors.New("matrix shape mismatch")
	svc := NewPredictionService(&fakeModel{err: cause}, nil, nil, nil)
	_, _, err := svc.Predict(context.Background(), budi())
	var ierr *insurance.InferenceError
	if !errors.As(err, &ierr) || !errors.Is(err, cause) {
		t.Fatalf("expected InferenceError wrapping cause, got %v", err)
	}
	if ierr.Features.Sex != 1 {
		t.Fatalf("inference error should carry the row, got %+v", ierr.Features)
	}
}

func TestPredictWithoutModel(t *testing.T) {
	svc := NewPredictionService(nil, nil, nil, nil)
	if _, _, err := svc.Predict(context.Background(), budi()); !errors.Is(err, ml.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestSubmitStoresAndPublishes(t *testing.T) {
	model := &fakeModel{}
	store := &memoryStore{}
	pub := &recordingPublisher{}
	svc := NewPredictionService(model, store, pub, nil)

	input := budi()
	input.Name = "  Budi  "
	rec, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 1 || rec.Name != "Budi" || rec.Sex != 1 || rec.Smoker != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	expected, _, _ := svc.Predict(context.Background(), budi())
	if rec.PredictedCharges != expected {
		t.Fatalf("stored charges %f differ from model output %f", rec.PredictedCharges, expected)
	}
	if len(store.records) != 1 || store.records[0] != *rec {
		t.Fatalf("store mismatch: %+v", store.records)
	}
	if len(pub.published) != 1 || pub.published[0].ID != 1 {
		t.Fatalf("expected one published record, got %+v", pub.published)
	}
}

func TestSubmitRejectsEmptyNameBeforeModel(t *testing.T) {
	model := &fakeModel{}
	store := &memoryStore{}
	svc := NewPredictionService(model, store, nil, nil)

	input := insurance.CustomerInput{Name: "", Age: 40, Sex: insurance.SexFemale, BMI: 22.0, Children: 2, Smoker: insurance.SmokerYes}
	_, err := svc.Submit(context.Background(), input)
	var verr *insurance.ValidationError
	if !errors.As(err, &verr) || verr.Field != "name" {
		t.Fatalf("expected name ValidationError, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("model should not be called, got %d calls", model.calls)
	}
	if len(store.records) != 0 {
		t.Fatalf("no row should be inserted")
	}
}

func TestSubmitModelFailureStoresNothing(t *testing.T) {
	store := &memoryStore{}
	pub := &recordingPublisher{}
	svc := NewPredictionService(&fakeModel{err: errors.New("nan")}, store, pub, nil)
	if _, err := svc.Submit(context.Background(), budi()); err == nil {
		t.Fatal("expected error")
	}
	if len(store.records) != 0 || len(pub.published) != 0 {
		t.Fatal("failed prediction must not be stored or published")
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	store := &memoryStore{err: &insurance.StorageError{Op: "connect", Err: errors.New("refused")}}
	pub := &recordingPublisher{}
	svc := NewPredictionService(&fakeModel{}, store, pub, nil)
	_, err := svc.Submit(context.Background(), budi())
	var serr *insurance.StorageError
	if !errors.As(err, &serr) || serr.Op != "connect" {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatal("nothing should be published after a failed insert")
	}
}

func TestReportEmptyStore(t *testing.T) {
	svc := NewReportingService(&memoryStore{}, report.NewLocale("en"), nil)
	out, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Empty() || out.Summary != nil {
		t.Fatalf("expected empty report, got %+v", out)
	}
}

func TestReportSummarizesStoredPredictions(t *testing.T) {
	store := &memoryStore{}
	pred := NewPredictionService(&fakeModel{}, store, nil, nil)
	inputs := []insurance.CustomerInput{
		budi(),
		{Name: "Ani", Age: 40, Sex: insurance.SexFemale, BMI: 22.0, Children: 2, Smoker: insurance.SmokerYes},
		{Name: "Eka", Age: 55, Sex: insurance.SexFemale, BMI: 31.5, Children: 1, Smoker: insurance.SmokerNo},
	}
	for _, in := range inputs {
		if _, err := pred.Submit(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	svc := NewReportingService(store, report.NewLocale("en"), nil)
	out, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Summary == nil || out.Summary.Total != 3 {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
	female, ok := out.Summary.Sex.Find(0)
	if !ok || female.Count != 2 {
		t.Fatalf("expected two female rows, got %+v", out.Summary.Sex)
	}
	want := (store.records[1].PredictedCharges + store.records[2].PredictedCharges) / 2
	if math.Abs(female.MeanCharges-want) > 1e-9 {
		t.Fatalf("expected mean %f, got %f", want, female.MeanCharges)
	}
}

func TestReportPropagatesStorageError(t *testing.T) {
	svc := NewReportingService(&memoryStore{err: &insurance.StorageError{Op: "query", Err: errors.New("gone")}}, report.NewLocale("en"), nil)
	if _, err := svc.Report(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
