package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"backoffice/internal/config"
)

func New(cfg config.Config) *zap.SugaredLogger {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, _ := zcfg.Build()
	return l.Sugar()
}
