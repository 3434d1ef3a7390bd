package logger

import (
	"fmt"

	"labbudget/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Bootstrap 在設定載入前先安裝一個開發用 logger，讓設定階段的訊息也能輸出
func Bootstrap() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	zap.ReplaceGlobals(l)
	return l
}

// Init 依設定建立 logger 並取代全域 logger
// release 模式輸出 JSON，其餘模式輸出易讀的 console 格式
func Init(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Server.Mode == "release" {
		zc = zap.NewProductionConfig()
	}

	if cfg.Log.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("無效的日誌等級 %q: %w", cfg.Log.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("建立 logger 失敗: %w", err)
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
