package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadTestPipeline(t *testing.T) (*Forest, *StandardScaler) {
	t.Helper()
	forest, err := LoadForest(filepath.Join("testdata", "forest.json"))
	if err != nil {
		t.Fatalf("load forest: %v", err)
	}
	scaler, err := LoadStandardScaler(filepath.Join("testdata", "scaler.json"))
	if err != nil {
		t.Fatalf("load scaler: %v", err)
	}
	return forest, scaler
}

func TestLoadForest(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "malformed json",
			content: `{"classes": [`,
			errMsg:  "failed to parse forest",
		},
		{
			name:    "no classes",
			content: `{"n_features": 6, "trees": [{"nodes": [{"left": -1, "right": -1, "value": []}]}]}`,
			errMsg:  "no classes",
		},
		{
			name:    "wrong feature count",
			content: `{"classes": ["a"], "n_features": 4, "trees": [{"nodes": [{"left": -1, "right": -1, "value": [1]}]}]}`,
			errMsg:  "n_features is 4, expected 6",
		},
		{
			name:    "no trees",
			content: `{"classes": ["a"], "n_features": 6, "trees": []}`,
			errMsg:  "no trees",
		},
		{
			name:    "empty tree",
			content: `{"classes": ["a"], "n_features": 6, "trees": [{"nodes": []}]}`,
			errMsg:  "tree 0 has no nodes",
		},
		{
			name:    "leaf value length mismatch",
			content: `{"classes": ["a", "b"], "n_features": 6, "trees": [{"nodes": [{"left": -1, "right": -1, "value": [1]}]}]}`,
			errMsg:  "tree 0 node 0 has 1 values for 2 classes",
		},
		{
			name:    "zero weight leaf",
			content: `{"classes": ["a", "b"], "n_features": 6, "trees": [{"nodes": [{"left": -1, "right": -1, "value": [0, 0]}]}]}`,
			errMsg:  "tree 0 node 0 has no positive class weight",
		},
		{
			name:    "negative weight leaf",
			content: `{"classes": ["a", "b"], "n_features": 6, "trees": [{"nodes": [{"left": -1, "right": -1, "value": [3, -1]}]}]}`,
			errMsg:  "tree 0 node 0 has no positive class weight",
		},
		{
			name:    "feature out of range",
			content: `{"classes": ["a"], "n_features": 6, "trees": [{"nodes": [{"feature": 6, "left": 1, "right": 2}, {"left": -1, "value": [1]}, {"left": -1, "value": [1]}]}]}`,
			errMsg:  "tree 0 node 0 feature index 6 out of range",
		},
		{
			name:    "cyclic children",
			content: `{"classes": ["a"], "n_features": 6, "trees": [{"nodes": [{"feature": 0, "left": 0, "right": 1}, {"left": -1, "value": [1]}]}]}`,
			errMsg:  "tree 0 node 0 has invalid children",
		},
		{
			name:    "child out of range",
			content: `{"classes": ["a"], "n_features": 6, "trees": [{"nodes": [{"feature": 0, "left": 1, "right": 5}, {"left": -1, "value": [1]}]}]}`,
			errMsg:  "tree 0 node 0 has invalid children",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadForest(writeFile(t, "forest.json", tc.content))
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadForest(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorContains(t, err, "failed to read forest")
	})
}

func TestForest_Predict(t *testing.T) {
	forest, scaler := loadTestPipeline(t)

	tests := []struct {
		name       string
		input      PredictionInput
		label      string
		confidence float64
	}{
		{
			name:       "setosa",
			input:      PredictionInput{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2},
			label:      "Iris-setosa",
			confidence: 1,
		},
		{
			name:       "versicolor",
			input:      PredictionInput{SepalLength: 5.9, SepalWidth: 3.0, PetalLength: 4.2, PetalWidth: 1.5},
			label:      "Iris-versicolor",
			confidence: (49.0/54 + 47.0/49 + 44.0/45) / 3,
		},
		{
			name:       "virginica",
			input:      PredictionInput{SepalLength: 6.7, SepalWidth: 3.0, PetalLength: 5.2, PetalWidth: 2.3},
			label:      "Iris-virginica",
			confidence: (45.0/46 + 48.0/51 + 49.0/55) / 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			v := BuildFeatureVector(tc.input)
			scaled, err := scaler.Transform(v.Slice())
			assert.NoError(err)

			label, err := forest.Predict(scaled)
			assert.NoError(err)
			assert.Equal(tc.label, label)
			assert.Contains(forest.Classes(), label)

			proba, err := forest.PredictProba(scaled)
			assert.NoError(err)
			assert.Len(proba, 3)

			var sum float64
			for _, p := range proba {
				assert.GreaterOrEqual(p, 0.0)
				assert.LessOrEqual(p, 1.0)
				sum += p
			}
			assert.InDelta(1.0, sum, 1e-9)
			assert.InDelta(tc.confidence, proba[argmax(proba)], 1e-9)
		})
	}
}

func TestForest_PredictProbaDimensionMismatch(t *testing.T) {
	forest, _ := loadTestPipeline(t)

	_, err := forest.PredictProba([]float64{1, 2, 3, 4})
	assert.EqualError(t, err, "X has 4 features, but forest is expecting 6 features as input")

	_, err = forest.Predict([]float64{1})
	assert.Error(t, err)
}

func TestForest_ProbaLowerBound(t *testing.T) {
	path := writeFile(t, "forest.json", `{
		"classes": ["a", "b"],
		"n_features": 6,
		"trees": [
			{"nodes": [{"left": -1, "right": -1, "value": [0, 2]}]},
			{"nodes": [{"left": -1, "right": -1, "value": [1, 3]}]}
		]
	}`)

	forest, err := LoadForest(path)
	assert.NoError(t, err)

	proba, err := forest.PredictProba(make([]float64, FeatureCount))
	assert.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.125, 0.875}, proba, 1e-9)
	assert.GreaterOrEqual(t, proba[argmax(proba)], 0.5)
}

func TestForest_ClassesCopies(t *testing.T) {
	forest, _ := loadTestPipeline(t)
	classes := forest.Classes()
	classes[0] = "changed"
	assert.Equal(t, "Iris-setosa", forest.Classes()[0])
	assert.Equal(t, "RandomForestClassifier", forest.ModelType())
}
