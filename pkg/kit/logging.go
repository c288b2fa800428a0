package kit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Level    string
	Encoding string
}

// NewLogger builds a production zap logger tagged with the service name.
// An unknown level falls back to info; an empty encoding means json.
func NewLogger(service string, cfg LoggerConfig) *zap.Logger {
	zc := zap.NewProductionConfig()
	zc.InitialFields = map[string]any{"service": service}

	if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	if cfg.Encoding == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
