package routes

import (
	handlers "lovelens.link/handlers/dashboard"
	"lovelens.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları ve middleware'leri tanımlar.
// Sadece IsSystem=true olan kullanıcılar erişebilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := handlers.NewHomeHandler()
	userHandler := handlers.NewUserHandler()
	boothHandler := handlers.NewBoothHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireSystem(),  // 3. Sistem yöneticisi mi?
	)

	// --- Ana Sayfa ---
	dashboardGroup.Get("/home", homeHandler.HomePage) // GET /dashboard/home

	// --- Kullanıcı Yönetimi ---
	dashboardGroup.Get("/users", userHandler.ListUsers) // GET /dashboard/users

	// --- Booth Yönetimi (Admin Görünümü) ---
	dashboardGroup.Get("/booths", boothHandler.ListBooths) // GET /dashboard/booths
}
