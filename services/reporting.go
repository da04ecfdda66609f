package services

import (
	"context"

	"insurecost/insurance"
	"insurecost/logging"
	"insurecost/report"
)

// PredictionSource is the read side of the persistence gateway.
type PredictionSource interface {
	FetchAllPredictions(ctx context.Context) ([]insurance.PredictionRecord, error)
}

// Report is everything the "show stored data" view needs. Summary is nil when
// nothing has been stored yet.
type Report struct {
	Records []insurance.PredictionRecord `json:"records"`
	Summary *report.Summary              `json:"summary,omitempty"`
}

// Empty reports whether nothing has been stored yet.
func (r *Report) Empty() bool {
	return len(r.Records) == 0
}

// ReportingService reads stored predictions and summarizes them.
type ReportingService struct {
	source PredictionSource
	locale report.Locale
	log    *logging.Logger
}

// NewReportingService wires the store read side and the locale.
func NewReportingService(source PredictionSource, locale report.Locale, log *logging.Logger) *ReportingService {
	if log == nil {
		log = logging.NewNop()
	}
	return &ReportingService{source: source, locale: locale, log: log.With("service", "reporting")}
}

// Locale returns the labels and number format in use.
func (s *ReportingService) Locale() report.Locale {
	return s.locale
}

// Records returns every stored prediction by ascending id.
func (s *ReportingService) Records(ctx context.Context) ([]insurance.PredictionRecord, error) {
	records, err := s.source.FetchAllPredictions(ctx)
	if err != nil {
		s.log.Error("fetching predictions failed", "error", err)
		return nil, err
	}
	return records, nil
}

// Report fetches all rows and summarizes them unless the store is empty.
func (s *ReportingService) Report(ctx context.Context) (*Report, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	out := &Report{Records: records}
	if len(records) == 0 {
		s.log.Info("no predictions stored yet")
		return out, nil
	}
	summary := report.Summarize(records, s.locale)
	out.Summary = &summary
	return out, nil
}
