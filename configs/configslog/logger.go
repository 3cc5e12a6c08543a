package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapısal loglama için, SLog ise sugared (printf tarzı) loglama için.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger ortam değişkenine göre logger'ı başlatır.
// APP_ENV=production ise JSON, aksi halde development config kullanılır.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		Log, err = cfg.Build(zap.AddCallerSkip(0))
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("logger başlatılamadı: " + err.Error())
	}
	SLog = Log.Sugar()
}

// SyncLogger buffer'daki logları flush eder (defer ile çağrılmalı).
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
