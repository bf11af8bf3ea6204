package app

import (
	"os"

	"service-dispatch/internal/config"
	"service-dispatch/internal/logx"
)

func newLogger(cfg *config.Config) logx.Logger {
	if cfg.Log.Format == "zap" {
		return logx.NewZap(logx.ZapOptions{
			Level:      cfg.Log.Level,
			File:       cfg.Log.File,
			MaxSizeMB:  100,
			MaxBackups: 5,
			MaxAgeDays: 28,
		})
	}
	return logx.NewSlogJSON(os.Stdout, cfg.Log.Level)
}
