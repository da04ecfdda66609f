package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"insurecost/chart"
	"insurecost/insurance"
	"insurecost/logging"
	"insurecost/services"
)

const (
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

type errorBody struct {
	Level string `json:"level"`
	Error string `json:"error,omitempty"`
	Field string `json:"field,omitempty"`
}

// Handlers holds the services behind the API routes.
type Handlers struct {
	predictions *services.PredictionService
	reports     *services.ReportingService
	feed        *Feed
	log         *logging.Logger
}

// NewHandlers builds the route handlers. feed may be nil.
func NewHandlers(predictions *services.PredictionService, reports *services.ReportingService, feed *Feed, log *logging.Logger) *Handlers {
	if log == nil {
		log = logging.NewNop()
	}
	return &Handlers{predictions: predictions, reports: reports, feed: feed, log: log}
}

// RegisterHandlers mounts every API route on mux.
func RegisterHandlers(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/form", handleForm)
	mux.HandleFunc("POST /api/predictions", h.handleCreatePrediction)
	mux.HandleFunc("GET /api/predictions", h.handleListPredictions)
	mux.HandleFunc("GET /api/reports/summary", h.handleSummary)
	mux.HandleFunc("GET /api/reports/charts/{chart}", h.handleChart)
	if h.feed != nil {
		mux.HandleFunc("GET /api/ws/predictions", h.feed.handleWebSocket)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"defaults": insurance.DefaultCustomerInput(),
		"ranges": map[string][2]float64{
			"age":      {insurance.MinAge, insurance.MaxAge},
			"bmi":      {insurance.MinBMI, insurance.MaxBMI},
			"children": {insurance.MinChildren, insurance.MaxChildren},
		},
		"choices": map[string][]string{
			"sex":    {string(insurance.SexMale), string(insurance.SexFemale)},
			"smoker": {string(insurance.SmokerYes), string(insurance.SmokerNo)},
		},
	})
}

func (h *Handlers) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	input := insurance.DefaultCustomerInput()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Level: levelWarning, Error: "invalid request body"})
		return
	}
	if err := input.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	rec, err := h.predictions.Submit(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"record":  rec,
		"premium": h.reports.Locale().FormatPremium(rec.PredictedCharges),
		"message": "prediction saved",
	})
}

func (h *Handlers) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	records, err := h.reports.Records(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	body := map[string]interface{}{
		"records": records,
		"count":   len(records),
	}
	if len(records) == 0 {
		body["level"] = levelInfo
		body["message"] = h.reports.Locale().Titles.NoData
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Report(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if rep.Empty() {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"level":   levelInfo,
			"message": h.reports.Locale().Titles.NoData,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": rep.Summary,
		"charts":  chart.Names(),
	})
}

func (h *Handlers) handleChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("chart")
	if !slices.Contains(chart.Names(), name) {
		writeJSON(w, http.StatusNotFound, errorBody{Level: levelWarning, Error: "unknown chart " + name})
		return
	}

	rep, err := h.reports.Report(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if rep.Empty() {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"level":   levelInfo,
			"message": h.reports.Locale().Titles.NoData,
		})
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, name, *rep.Summary, h.reports.Locale()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writeError maps the error taxonomy to a status and banner level.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *insurance.ValidationError
		ierr *insurance.InferenceError
		serr *insurance.StorageError
		derr *chart.NotDrawableError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Level: levelWarning, Error: verr.Error(), Field: verr.Field})
	case errors.As(err, &derr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Level: levelWarning, Error: derr.Error()})
	case errors.As(err, &ierr):
		writeJSON(w, http.StatusInternalServerError, errorBody{Level: levelError, Error: ierr.Error()})
	case errors.As(err, &serr) && serr.Op == "connect":
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Level: levelError, Error: serr.Error()})
	default:
		h.log.Error("request failed", "request_id", GetRequestID(r.Context()), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Level: levelError, Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
