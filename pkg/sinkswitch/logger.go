package sinkswitch

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger provides a logger writing to stderr. stdout is kept clean for the
// confirmation text, so the quiet logger only speaks up about warnings
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	var loggerConfig zap.Config

	if verbose {
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		loggerConfig = zap.NewProductionConfig()
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		loggerConfig.Encoding = "console"
		loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		loggerConfig.DisableStacktrace = true
		loggerConfig.DisableCaller = true
		loggerConfig.Sampling = nil
	}

	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("create zap logger: %w", err)
	}

	return logger.Sugar().Named("sinkswitch"), nil
}
