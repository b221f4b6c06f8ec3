package model

import (
	"fmt"
)

const (
	FormatJSON = "json"
	FormatONNX = "onnx"
)

type LoadOptions struct {
	Format         string
	ClassifierPath string
	ScalerPath     string

	// ONNX only.
	MetadataPath      string
	SharedLibraryPath string
}

// Load reads both artifacts and returns a ready Server. It does not retry;
// callers are expected to abort startup on error.
func Load(opts LoadOptions) (*Server, error) {
	switch opts.Format {
	case FormatJSON, "":
		return loadJSON(opts)
	case FormatONNX:
		return loadONNX(opts)
	default:
		return nil, fmt.Errorf("unsupported model format %q", opts.Format)
	}
}

func loadJSON(opts LoadOptions) (*Server, error) {
	forest, err := LoadForest(opts.ClassifierPath)
	if err != nil {
		return nil, err
	}

	scaler, err := LoadStandardScaler(opts.ScalerPath)
	if err != nil {
		return nil, err
	}

	return NewServer(forest, scaler, WithModelType(forest.ModelType()))
}

func loadONNX(opts LoadOptions) (*Server, error) {
	runtime, err := NewONNXRuntime(opts.ClassifierPath, opts.ScalerPath, opts.MetadataPath, opts.SharedLibraryPath)
	if err != nil {
		return nil, err
	}

	s, err := NewServer(runtime.Classifier(), runtime.Scaler(),
		WithModelType(runtime.Metadata.ModelType),
		WithCloser(runtime))
	if err != nil {
		runtime.Close()
		return nil, err
	}
	return s, nil
}
