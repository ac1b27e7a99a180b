// Package predict composes the inference pipeline: validate and encode the
// raw request, scale, classify, and derive the wellness score and
// recommendations into a single response.
package predict

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"chronopulse/artifact"
	"chronopulse/feature"
	"chronopulse/health"
)

// Response is the complete prediction payload. All fields are populated
// together or the request fails entirely.
type Response struct {
	Prediction      string             `json:"prediction"`
	Probabilities   map[string]float64 `json:"probabilities"`
	HealthScore     float64            `json:"health_score"`
	Recommendations []string           `json:"recommendations"`
	ModelInfo       ModelInfo          `json:"model_info"`
}

// ModelInfo echoes training metadata for client display.
type ModelInfo struct {
	ModelName string   `json:"model_name"`
	Accuracy  float64  `json:"accuracy"`
	Classes   []string `json:"classes"`
}

// InternalError wraps a pipeline invariant violation. Callers only ever see
// the opaque reference id; the cause is logged in full by the service.
type InternalError struct {
	ReferenceID string
	Err         error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error (reference %s)", e.ReferenceID)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a user-facing input problem,
// rejected before any model work began.
func IsValidationError(err error) bool {
	var missing *feature.MissingFieldError
	var rng *feature.RangeError
	var category *feature.UnrecognizedCategoryError
	return errors.As(err, &missing) || errors.As(err, &rng) || errors.As(err, &category)
}

// Service is the prediction orchestrator. It holds the immutable artifact
// bundle plus a response cache, and is safe for concurrent use.
type Service struct {
	bundle *artifact.Bundle
	cache  *lru.Cache[string, *Response]
	logger *zap.Logger
	newRef func() string
}

// NewService builds the orchestrator. cacheSize 0 disables the response
// cache; caching is sound because predictions are deterministic and the
// bundle never changes within a process lifetime.
func NewService(bundle *artifact.Bundle, cacheSize int, logger *zap.Logger) (*Service, error) {
	if bundle == nil {
		return nil, errors.New("artifact bundle is required")
	}
	s := &Service{
		bundle: bundle,
		logger: logger,
		newRef: newReferenceID,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, *Response](cacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// Predict runs the full pipeline for one request. Validation and encoding
// failures return the originating typed error; anything past encoding that
// fails is an InternalError.
func (s *Service) Predict(ctx context.Context, in feature.RawInput) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vector, err := feature.Encode(in, s.bundle.FeatureNames())
	if err != nil {
		if IsValidationError(err) {
			return nil, err
		}
		return nil, s.internal("encode", err)
	}

	key := cacheKey(in)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	scaled, err := s.bundle.Scale(vector)
	if err != nil {
		return nil, s.internal("scale", err)
	}

	prediction, err := s.bundle.Classify(scaled)
	if err != nil {
		return nil, s.internal("classify", err)
	}

	score := health.Score(in)
	recommendations := health.Recommend(prediction.Label, score, in)

	meta := s.bundle.Metadata()
	resp := &Response{
		Prediction:      prediction.Label,
		Probabilities:   prediction.Probabilities,
		HealthScore:     score,
		Recommendations: recommendations,
		ModelInfo: ModelInfo{
			ModelName: meta.ModelName,
			Accuracy:  meta.Accuracy,
			Classes:   meta.Classes,
		},
	}

	if s.cache != nil {
		s.cache.Add(key, resp)
	}
	return resp, nil
}

// Metadata exposes the bundle metadata for the model-info endpoint.
func (s *Service) Metadata() artifact.Metadata {
	return s.bundle.Metadata()
}

func (s *Service) internal(stage string, err error) error {
	ref := s.newRef()
	if s.logger != nil {
		s.logger.Error("prediction pipeline invariant violation",
			zap.String("stage", stage),
			zap.String("reference_id", ref),
			zap.Error(err))
	}
	return &InternalError{ReferenceID: ref, Err: err}
}

// cacheKey canonicalizes a raw input. Two requests with the same key encode
// to the same vector, so sharing the response is safe.
func cacheKey(in feature.RawInput) string {
	return fmt.Sprintf("%g|%s|%s|%g|%g|%g|%g|%s|%g|%g|%g|%g",
		in.Age, in.Gender, in.Occupation, in.SleepDuration, in.QualityOfSleep,
		in.PhysicalActivityLevel, in.StressLevel, in.BMICategory,
		in.HeartRate, in.DailySteps, in.SystolicBP, in.DiastolicBP)
}
