package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFeatureVector(t *testing.T) {
	tests := []struct {
		name   string
		input  PredictionInput
		expect []float64
	}{
		{
			name:   "setosa sample",
			input:  PredictionInput{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2},
			expect: []float64{5.1, 3.5, 1.4, 0.2, 17.85, 0.28},
		},
		{
			name:   "zero values",
			input:  PredictionInput{},
			expect: []float64{0, 0, 0, 0, 0, 0},
		},
		{
			name:   "negative values are not rejected",
			input:  PredictionInput{SepalLength: -1, SepalWidth: 2, PetalLength: 3, PetalWidth: -4},
			expect: []float64{-1, 2, 3, -4, -2, -12},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := BuildFeatureVector(tc.input)
			assert.Len(t, v.Slice(), FeatureCount)
			assert.InDeltaSlice(t, tc.expect, v.Slice(), 1e-9)
		})
	}
}

func TestFeatureNames(t *testing.T) {
	assert := assert.New(t)
	assert.Len(FeatureNames, FeatureCount)
	assert.Equal([]string{
		"SepalLengthCm",
		"SepalWidthCm",
		"PetalLengthCm",
		"PetalWidthCm",
		"sepal_area",
		"petal_area",
	}, featureNames())
}

func TestFeatureVector_SliceCopies(t *testing.T) {
	v := BuildFeatureVector(PredictionInput{SepalLength: 1})
	s := v.Slice()
	s[0] = 42
	assert.Equal(t, 1.0, v[0])
}
