package model

// Scaler normalizes a feature vector before inference.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a class label.
type Classifier interface {
	Predict(features []float64) (string, error)
	PredictProba(features []float64) ([]float64, error)
	Classes() []string
}

const (
	DefaultModelType = "RandomForestClassifier"
	ProblemType      = "classification"
)
