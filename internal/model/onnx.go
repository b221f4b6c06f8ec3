package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	ort "github.com/yalue/onnxruntime_go"
)

const (
	defaultONNXClassifierInput  = "input"
	defaultONNXClassifierOutput = "probabilities"
	defaultONNXScalerInput      = "input"
	defaultONNXScalerOutput     = "variable"
)

// ONNXRuntime owns the onnxruntime environment and the sessions created for
// one classifier/scaler pair.
type ONNXRuntime struct {
	Metadata   Metadata
	classifier *ONNXClassifier
	scaler     *ONNXScaler
}

// ONNXClassifier runs a classifier exported with zipmap disabled, so the
// probability output is a dense [1, classes] tensor.
type ONNXClassifier struct {
	session *ort.DynamicAdvancedSession
	classes []string
}

type ONNXScaler struct {
	session *ort.DynamicAdvancedSession
}

func LoadMetadata(path string) (Metadata, error) {
	var metadata Metadata

	metaFile, err := os.ReadFile(path)
	if err != nil {
		return metadata, fmt.Errorf("failed to read metadata: %w", err)
	}
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return metadata, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return metadata, errors.New("metadata lists no classes")
	}

	if metadata.ClassifierInput == "" {
		metadata.ClassifierInput = defaultONNXClassifierInput
	}
	if metadata.ClassifierOutput == "" {
		metadata.ClassifierOutput = defaultONNXClassifierOutput
	}
	if metadata.ScalerInput == "" {
		metadata.ScalerInput = defaultONNXScalerInput
	}
	if metadata.ScalerOutput == "" {
		metadata.ScalerOutput = defaultONNXScalerOutput
	}
	return metadata, nil
}

func NewONNXRuntime(classifierPath, scalerPath, metadataPath, sharedLibraryPath string) (*ONNXRuntime, error) {
	metadata, err := LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	if sharedLibraryPath != "" {
		ort.SetSharedLibraryPath(sharedLibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	scalerSession, err := ort.NewDynamicAdvancedSession(scalerPath,
		[]string{metadata.ScalerInput}, []string{metadata.ScalerOutput}, nil)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create scaler session: %w", err)
	}

	classifierSession, err := ort.NewDynamicAdvancedSession(classifierPath,
		[]string{metadata.ClassifierInput}, []string{metadata.ClassifierOutput}, nil)
	if err != nil {
		scalerSession.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create classifier session: %w", err)
	}

	return &ONNXRuntime{
		Metadata:   metadata,
		classifier: &ONNXClassifier{session: classifierSession, classes: metadata.Classes},
		scaler:     &ONNXScaler{session: scalerSession},
	}, nil
}

func (r *ONNXRuntime) Classifier() *ONNXClassifier {
	return r.classifier
}

func (r *ONNXRuntime) Scaler() *ONNXScaler {
	return r.scaler
}

func (r *ONNXRuntime) Close() error {
	var result *multierror.Error
	if r.classifier != nil && r.classifier.session != nil {
		if err := r.classifier.session.Destroy(); err != nil {
			result = multierror.Append(result, fmt.Errorf("destroy classifier session: %w", err))
		}
	}
	if r.scaler != nil && r.scaler.session != nil {
		if err := r.scaler.session.Destroy(); err != nil {
			result = multierror.Append(result, fmt.Errorf("destroy scaler session: %w", err))
		}
	}
	if err := ort.DestroyEnvironment(); err != nil {
		result = multierror.Append(result, fmt.Errorf("destroy environment: %w", err))
	}
	return result.ErrorOrNil()
}

func (s *ONNXScaler) Transform(features []float64) ([]float64, error) {
	out, err := runFloat32(s.session, features, len(features))
	if err != nil {
		return nil, fmt.Errorf("scaler inference failed: %w", err)
	}
	return out, nil
}

func (c *ONNXClassifier) Classes() []string {
	classes := make([]string, len(c.classes))
	copy(classes, c.classes)
	return classes
}

func (c *ONNXClassifier) Predict(features []float64) (string, error) {
	proba, err := c.PredictProba(features)
	if err != nil {
		return "", err
	}
	return c.classes[argmax(proba)], nil
}

func (c *ONNXClassifier) PredictProba(features []float64) ([]float64, error) {
	out, err := runFloat32(c.session, features, len(c.classes))
	if err != nil {
		return nil, fmt.Errorf("classifier inference failed: %w", err)
	}
	return out, nil
}

// runFloat32 feeds a single [1, n] row through the session. Tensors are
// allocated per call so one session serves concurrent requests.
func runFloat32(session *ort.DynamicAdvancedSession, features []float64, outputSize int) ([]float64, error) {
	input := make([]float32, len(features))
	for i, v := range features {
		input[i] = float32(v)
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(input))), input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(outputSize)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := session.Run([]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return nil, err
	}

	data := outputTensor.GetData()
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out, nil
}
