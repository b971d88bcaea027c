package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/evimeria/catalog-service/config"
)

// New builds the application logger from config. Development gets a human
// console encoder at debug level; everything else logs structured JSON.
func New(cfg *config.Config) *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.Encoding = "json"

	if cfg.Server.AppEnv == "development" {
		logCfg = zap.NewDevelopmentConfig()
		logCfg.Encoding = "console"
	}

	if cfg.Logger.Encoding != "" {
		logCfg.Encoding = cfg.Logger.Encoding
	}
	if level, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
		logCfg.Level = zap.NewAtomicLevelAt(level)
	}
	logCfg.DisableCaller = cfg.Logger.DisableCaller
	logCfg.DisableStacktrace = cfg.Logger.DisableStacktrace

	log, err := logCfg.Build()
	if err != nil {
		// zap only fails to build on an invalid config, which is static here.
		panic(err)
	}
	return log
}
