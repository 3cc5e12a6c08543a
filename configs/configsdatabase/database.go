package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"lovelens.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB ortam değişkenlerinden DSN oluşturup Postgres bağlantısını açar.
func InitDB() {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	name := getEnv("DB_NAME", "lovelens")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, password, name, sslmode)

	logLevel := gormlogger.Warn
	if os.Getenv("APP_ENV") != "production" {
		logLevel = gormlogger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Info("Veritabanı bağlantısı başarıyla kuruldu.")
}

// GetDB aktif GORM bağlantısını döndürür. InitDB çağrılmadan kullanılamaz.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB: Veritabanı henüz başlatılmadı (InitDB çağrılmalı)")
	}
	return db
}

// CloseDB bağlantı havuzunu kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("CloseDB: sql.DB örneği alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("CloseDB: Bağlantı kapatılamadı", zap.Error(err))
		return
	}
	configslog.SLog.Info("Veritabanı bağlantısı kapatıldı.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
