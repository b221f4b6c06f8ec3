package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// StandardScaler standardizes features with a previously fitted mean and scale.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func LoadStandardScaler(path string) (*StandardScaler, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler: %w", err)
	}

	var s StandardScaler
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scaler: %w", err)
	}

	if len(s.Mean) == 0 {
		return nil, errors.New("scaler has no mean")
	}
	if len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler mean has %d values, scale has %d", len(s.Mean), len(s.Scale))
	}
	if len(s.Mean) != FeatureCount {
		return nil, fmt.Errorf("scaler fitted on %d features, expected %d", len(s.Mean), FeatureCount)
	}
	return &s, nil
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, fmt.Errorf("X has %d features, but scaler is expecting %d features as input", len(features), len(s.Mean))
	}

	out := make([]float64, len(features))
	for i, x := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}
