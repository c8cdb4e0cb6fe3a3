package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)

func SetupLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = logLevel
	logger := zap.Must(cfg.Build())
	return logger.Sugar()
}

// SetLogLevel applies the configured level to every logger built by
// SetupLogger, including those handed out before the settings were read.
func SetLogLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	logLevel.SetLevel(parsed)
	return nil
}
