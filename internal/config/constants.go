package config

import "time"

const (
	// DefaultServerPort is default port for server.
	DefaultServerPort = 8080

	// DefaultServerReadTimeout is default read timeout for server.
	DefaultServerReadTimeout = 30 * time.Second

	// DefaultServerWriteTimeout is default write timeout for server.
	DefaultServerWriteTimeout = 30 * time.Second

	// DefaultServerShutdownTimeout is default time to drain in-flight requests.
	DefaultServerShutdownTimeout = 5 * time.Second
)

const (
	// DefaultLogRotateMaxSize is default size in megabytes of a log file before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is default number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultModelFormat is default artifact format.
	DefaultModelFormat = "json"

	// DefaultClassifierPath is default path of the classifier artifact.
	DefaultClassifierPath = "models/model.json"

	// DefaultScalerPath is default path of the scaler artifact.
	DefaultScalerPath = "models/scaler.json"

	// DefaultMetadataPath is default path of the ONNX metadata.
	DefaultMetadataPath = "models/metadata.json"
)

var (
	// DefaultCORSAllowOrigins allows every origin.
	DefaultCORSAllowOrigins = []string{"*"}
)
