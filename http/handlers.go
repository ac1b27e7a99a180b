package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chronopulse/feature"
	"chronopulse/monitoring"
	"chronopulse/predict"
)

const serviceVersion = "1.0.0"

// Degrader reports whether the loaded artifacts have drifted on disk.
type Degrader interface {
	Stale() bool
}

// API holds the request handlers and their injected dependencies. Nothing
// here is ambient global state; tests build their own API instances.
type API struct {
	service  *predict.Service
	metrics  *monitoring.PredictionMetrics
	hub      *monitoring.Hub
	degrader Degrader
	logger   *zap.Logger
}

// NewAPI wires the handlers. hub and degrader may be nil.
func NewAPI(service *predict.Service, metrics *monitoring.PredictionMetrics, hub *monitoring.Hub, degrader Degrader, logger *zap.Logger) *API {
	return &API{
		service:  service,
		metrics:  metrics,
		hub:      hub,
		degrader: degrader,
		logger:   logger,
	}
}

// Register attaches all routes to the mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /", a.handleRoot)
	mux.HandleFunc("GET /api/health", a.handleHealth)
	mux.HandleFunc("GET /api/model-info", a.handleModelInfo)
	mux.HandleFunc("POST /api/predict", a.handlePredict)
	mux.HandleFunc("GET /api/metrics", a.handleMetrics)
	if a.hub != nil {
		mux.HandleFunc("GET /api/ws/monitor", a.hub.HandleWebSocket)
	}
}

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Chrono-Pulse AI API",
		"version": serviceVersion,
		"status":  "active",
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	degraded := a.degrader != nil && a.degrader.Stale()
	if degraded {
		// artifacts changed on disk after load; predictions still run
		// against the loaded copy, but the deploy needs a restart
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	meta := a.service.Metadata()
	respondJSON(w, code, map[string]interface{}{
		"status":       status,
		"model_loaded": len(meta.Classes) > 0,
		"degraded":     degraded,
	})
}

func (a *API) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	meta := a.service.Metadata()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"model_name": meta.ModelName,
		"accuracy":   meta.Accuracy,
		"precision":  meta.Precision,
		"recall":     meta.Recall,
		"f1_score":   meta.F1Score,
		"classes":    meta.Classes,
	})
}

func (a *API) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var input feature.RawInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.metrics.RecordRejection()
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.service.Predict(r.Context(), input)
	if err != nil {
		a.writePredictError(w, r, err)
		return
	}

	latency := time.Since(start)
	a.metrics.RecordPrediction(resp.Prediction, latency)
	if a.hub != nil {
		a.hub.PublishPrediction(monitoring.PredictionEventMessage{
			Label:       resp.Prediction,
			HealthScore: resp.HealthScore,
			LatencyMS:   float64(latency.Microseconds()) / 1000,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (a *API) writePredictError(w http.ResponseWriter, r *http.Request, err error) {
	if predict.IsValidationError(err) {
		a.metrics.RecordRejection()
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var internal *predict.InternalError
	if errors.As(err, &internal) {
		a.metrics.RecordInternalError()
		a.logger.Error("prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.String("reference_id", internal.ReferenceID),
			zap.Error(internal.Err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":        "prediction failed",
			"reference_id": internal.ReferenceID,
		})
		return
	}

	a.metrics.RecordInternalError()
	a.logger.Error("prediction failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Error(err))
	respondError(w, http.StatusInternalServerError, "prediction failed")
}

func (a *API) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.metrics.Snapshot())
}

func respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}
