package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Brownie44l1/iris-api/internal/model"
)

type Config struct {
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Console writes logs to stderr instead of files.
	Console bool `yaml:"console" mapstructure:"console"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Model artifacts configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// CORS configuration.
	CORS CORSConfig `yaml:"cors" mapstructure:"cors"`
}

type ServerConfig struct {
	// Listen host, empty means all interfaces.
	Host string `yaml:"host" mapstructure:"host"`

	// Server port.
	Port int `yaml:"port" mapstructure:"port"`

	ReadTimeout     time.Duration `yaml:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" mapstructure:"shutdownTimeout"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`
}

type ModelConfig struct {
	// Format of the artifacts, json or onnx.
	Format string `yaml:"format" mapstructure:"format"`

	ClassifierPath string `yaml:"classifierPath" mapstructure:"classifierPath"`
	ScalerPath     string `yaml:"scalerPath" mapstructure:"scalerPath"`

	// MetadataPath lists classes and tensor names, onnx only.
	MetadataPath string `yaml:"metadataPath" mapstructure:"metadataPath"`

	// SharedLibraryPath points at libonnxruntime, onnx only.
	SharedLibraryPath string `yaml:"sharedLibraryPath" mapstructure:"sharedLibraryPath"`
}

type MetricsConfig struct {
	// Enable serves prometheus metrics on /metrics.
	Enable bool `yaml:"enable" mapstructure:"enable"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Console: true,
		Server: ServerConfig{
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultServerReadTimeout,
			WriteTimeout:    DefaultServerWriteTimeout,
			ShutdownTimeout: DefaultServerShutdownTimeout,
			LogMaxSize:      DefaultLogRotateMaxSize,
			LogMaxAge:       DefaultLogRotateMaxAge,
			LogMaxBackups:   DefaultLogRotateMaxBackups,
		},
		Model: ModelConfig{
			Format:         DefaultModelFormat,
			ClassifierPath: DefaultClassifierPath,
			ScalerPath:     DefaultScalerPath,
			MetadataPath:   DefaultMetadataPath,
		},
		Metrics: MetricsConfig{
			Enable: false,
		},
		CORS: CORSConfig{
			AllowOrigins: DefaultCORSAllowOrigins,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server requires parameter port")
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return errors.New("server requires parameter shutdownTimeout")
	}

	if !cfg.Console && cfg.Server.LogDir == "" {
		return errors.New("server requires parameter logDir when console is disabled")
	}

	switch cfg.Model.Format {
	case model.FormatJSON, model.FormatONNX:
	default:
		return fmt.Errorf("model format %q is not supported", cfg.Model.Format)
	}

	if cfg.Model.ClassifierPath == "" {
		return errors.New("model requires parameter classifierPath")
	}

	if cfg.Model.ScalerPath == "" {
		return errors.New("model requires parameter scalerPath")
	}

	if cfg.Model.Format == model.FormatONNX && cfg.Model.MetadataPath == "" {
		return errors.New("model requires parameter metadataPath")
	}

	if len(cfg.CORS.AllowOrigins) == 0 {
		return errors.New("cors requires parameter allowOrigins")
	}

	return nil
}

// Addr is the listen address of the http server.
func (cfg *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// LoadOptions converts the model section for model.Load.
func (cfg *ModelConfig) LoadOptions() model.LoadOptions {
	return model.LoadOptions{
		Format:            cfg.Format,
		ClassifierPath:    cfg.ClassifierPath,
		ScalerPath:        cfg.ScalerPath,
		MetadataPath:      cfg.MetadataPath,
		SharedLibraryPath: cfg.SharedLibraryPath,
	}
}
