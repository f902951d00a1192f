package config

import (
	"github.com/srliao/critterduel/pkg/combat"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//NewLogger builds the development style sugared logger every engine takes
func NewLogger(c combat.LogConfig) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch c.LogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	if !c.LogShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if c.LogFile != "" {
		config.OutputPaths = []string{c.LogFile}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
