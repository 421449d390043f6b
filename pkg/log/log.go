package log

import (
	"go.uber.org/zap"
)

// InitLogger 初始化全局 zap 日志器，业务代码统一用 zap.L()
func InitLogger() {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}
