package main

import (
	"os"
	"os/signal"
	"syscall"

	"lovelens.link/configs"
	"lovelens.link/configs/configsdatabase"
	"lovelens.link/configs/configslog"
	"lovelens.link/configs/configsstorage"
	"lovelens.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env dosyası opsiyoneldir, production'da ortam değişkenleri kullanılır
	_ = godotenv.Load()

	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configsstorage.InitStorage()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		AppName:     "lovelens.link",
		BodyLimit:   64 * 1024 * 1024, // Çoklu medya yüklemeleri için; dosya başına sınır serviste uygulanır
		ViewsLayout: "layouts/public_layout",
	})

	app.Use(configs.SetupCSRF())
	routes.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	addr := ":" + getEnv("APP_PORT", "3000")
	configslog.SLog.Infof("Sunucu başlatılıyor: %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
