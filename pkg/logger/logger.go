package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var global = zap.NewNop()

// SetupLogger builds the application logger for the given environment,
// stores it as the package-level logger and returns a sugared view for
// key-value style logging in main.
func SetupLogger(env string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case envLocal, envDev:
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = cfg.Build()
	case envProd:
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewProduction()
	}

	if err != nil {
		log.Fatalf("cannot build zap logger: %s", err)
	}

	global = logger

	return logger.Sugar()
}

// Logger returns the underlying *zap.Logger, e.g. for ginzap middleware.
func Logger() *zap.Logger {
	return global
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	global.Error(msg, fields...)
}
