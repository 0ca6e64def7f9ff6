// Package logger builds the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a SugaredLogger at the given level. Unknown levels fall
// back to info.
func New(level string, development bool) (*zap.SugaredLogger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}
