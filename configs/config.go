package configs

import (
	"os"
	"time"

	"lovelens.link/configs/configsdatabase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// GetDB servis ve repository katmanlarının kullandığı kısayol.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// SetupSession cookie tabanlı session store'u hazırlar.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:lovelens_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   os.Getenv("APP_ENV") == "production",
	})
}

// SetupCSRF panel ve auth formları için CSRF middleware'ini üretir.
func SetupCSRF() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "lovelens_csrf",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		ContextKey:     "csrf",
	})
}
