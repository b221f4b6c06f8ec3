package model

import (
	"fmt"
	"math"
)

// FeatureCount is the length of every FeatureVector.
const FeatureCount = 6

// FeatureNames lists the model features in vector order.
var FeatureNames = [FeatureCount]string{
	"SepalLengthCm",
	"SepalWidthCm",
	"PetalLengthCm",
	"PetalWidthCm",
	"sepal_area",
	"petal_area",
}

// BuildFeatureVector appends the sepal and petal areas to the raw measurements.
func BuildFeatureVector(in PredictionInput) FeatureVector {
	return FeatureVector{
		in.SepalLength,
		in.SepalWidth,
		in.PetalLength,
		in.PetalWidth,
		in.SepalLength * in.SepalWidth,
		in.PetalLength * in.PetalWidth,
	}
}

func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

func featureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, FeatureNames[:])
	return names
}

// checkFinite rejects NaN and infinite values. The area features can overflow
// even when every measurement is finite.
func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			name := fmt.Sprintf("feature %d", i)
			if i < FeatureCount {
				name = FeatureNames[i]
			}
			return fmt.Errorf("input contains infinity or NaN: %s is %v", name, v)
		}
	}
	return nil
}
