package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName = "core.log"
	GinLogFileName  = "gin.log"
)

var (
	CoreLogger *zap.SugaredLogger
	GinLogger  *zap.Logger
)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

func init() {
	CoreLogger = zap.NewNop().Sugar()
	GinLogger = zap.NewNop()
}

type LogRotateConfig struct {
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

// Init replaces the default no-op loggers. Console mode logs to stderr,
// otherwise core and gin logs go to rotated JSON files under dir.
func Init(verbose, console bool, dir string, rotate LogRotateConfig) error {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	if console {
		return createConsoleLogger()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	SetCoreLogger(createFileLogger(filepath.Join(dir, CoreLogFileName), rotate, 1).Sugar())
	SetGinLogger(createFileLogger(filepath.Join(dir, GinLogFileName), rotate, 0))
	return nil
}

func createConsoleLogger() error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	log, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	SetCoreLogger(log.Sugar())
	SetGinLogger(log.WithOptions(zap.AddCallerSkip(-1)))
	return nil
}

func createFileLogger(path string, rotate LogRotateConfig, callerSkip int) *zap.Logger {
	syncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    rotate.MaxSize,
		MaxAge:     rotate.MaxAge,
		MaxBackups: rotate.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), syncer, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(callerSkip))
}

func SetCoreLogger(log *zap.SugaredLogger) {
	CoreLogger = log
}

func SetGinLogger(log *zap.Logger) {
	GinLogger = log
}

func Sync() {
	_ = CoreLogger.Sync()
	_ = GinLogger.Sync()
}

func Debugf(template string, args ...any) {
	CoreLogger.Debugf(template, args...)
}

func Infof(template string, args ...any) {
	CoreLogger.Infof(template, args...)
}

func Info(args ...any) {
	CoreLogger.Info(args...)
}

func Warnf(template string, args ...any) {
	CoreLogger.Warnf(template, args...)
}

func Errorf(template string, args ...any) {
	CoreLogger.Errorf(template, args...)
}

func Error(args ...any) {
	CoreLogger.Error(args...)
}
