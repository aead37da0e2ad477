package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns the structured logger handed to the pipeline. Status lines
// for people go through color; this one records progress and failures.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
