package model

import (
	"errors"
	"fmt"
	"io"
)

// Server runs the feature, scaling and classification pipeline. Its
// artifacts are set once by NewServer and only read afterwards.
type Server struct {
	classifier Classifier
	scaler     Scaler
	modelType  string
	closer     io.Closer
}

type ServerOption func(*Server)

func WithModelType(modelType string) ServerOption {
	return func(s *Server) {
		if modelType != "" {
			s.modelType = modelType
		}
	}
}

// WithCloser registers resources released by Close.
func WithCloser(c io.Closer) ServerOption {
	return func(s *Server) {
		s.closer = c
	}
}

func NewServer(classifier Classifier, scaler Scaler, opts ...ServerOption) (*Server, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if scaler == nil {
		return nil, errors.New("scaler is required")
	}

	s := &Server{
		classifier: classifier,
		scaler:     scaler,
		modelType:  DefaultModelType,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Predict(in PredictionInput) (*PredictionOutput, error) {
	features := BuildFeatureVector(in).Slice()
	if err := checkFinite(features); err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}

	scaled, err := s.scaler.Transform(features)
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}
	if len(scaled) != FeatureCount {
		return nil, fmt.Errorf("scaler returned %d features, expected %d", len(scaled), FeatureCount)
	}
	if err := checkFinite(scaled); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	label, err := s.classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	proba, err := s.classifier.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict proba: %w", err)
	}

	confidence, err := maxProbability(proba)
	if err != nil {
		return nil, err
	}

	return &PredictionOutput{
		Prediction: label,
		Confidence: confidence,
	}, nil
}

func (s *Server) Info() ModelInfo {
	return ModelInfo{
		ModelType:   s.modelType,
		ProblemType: ProblemType,
		Features:    featureNames(),
	}
}

func (s *Server) Classes() []string {
	return s.classifier.Classes()
}

func (s *Server) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func maxProbability(proba []float64) (float64, error) {
	if len(proba) == 0 {
		return 0, errors.New("empty probability distribution")
	}

	best := proba[0]
	for _, p := range proba[1:] {
		if p > best {
			best = p
		}
	}

	// NaN fails both comparisons.
	if !(best >= 0 && best <= 1) {
		return 0, fmt.Errorf("probability %v out of range [0, 1]", best)
	}
	return best, nil
}

// argmax returns the index of the first maximum value.
func argmax(values []float64) int {
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return idx
}
