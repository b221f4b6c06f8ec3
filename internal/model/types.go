package model

// PredictionInput is one flower measurement record in centimeters.
type PredictionInput struct {
	SepalLength float64
	SepalWidth  float64
	PetalLength float64
	PetalWidth  float64
}

// FeatureVector is the ordered model input, see FeatureNames.
type FeatureVector [FeatureCount]float64

type PredictionOutput struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

type ModelInfo struct {
	ModelType   string   `json:"model_type"`
	ProblemType string   `json:"problem_type"`
	Features    []string `json:"features"`
}

// Metadata describes an ONNX artifact pair.
type Metadata struct {
	ModelType string   `json:"model_type"`
	Classes   []string `json:"classes"`

	ClassifierInput  string `json:"classifier_input"`
	ClassifierOutput string `json:"classifier_output"`
	ScalerInput      string `json:"scaler_input"`
	ScalerOutput     string `json:"scaler_output"`
}
