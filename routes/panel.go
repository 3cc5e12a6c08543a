package routes

import (
	panel_handlers "lovelens.link/handlers/panel"
	"lovelens.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece normal kullanıcıların (IsSystem == false) erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	homeHandler := panel_handlers.NewPanelHomeHandler()
	boothHandler := panel_handlers.NewPanelBoothHandler()
	guestbookHandler := panel_handlers.NewPanelGuestbookHandler()
	mediaHandler := panel_handlers.NewPanelMediaHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireUser(),    // 3. Normal kullanıcı mı?
	)

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/home", homeHandler.PanelHomeHandler) // GET /panel/home

	// --- Booth Kurulumu ve Ayarlar ---
	panelGroup.Get("/booth/create", boothHandler.ShowCreateBooth) // GET /panel/booth/create
	panelGroup.Post("/booth/create", boothHandler.CreateBooth)    // POST /panel/booth/create
	panelGroup.Get("/settings", boothHandler.ShowSettings)        // GET /panel/settings
	panelGroup.Post("/settings", boothHandler.UpdateSettings)     // POST /panel/settings

	// --- Anı Defteri (Mesajlar) ---
	panelGroup.Get("/guestbook", guestbookHandler.ListGuestbook)      // GET /panel/guestbook
	panelGroup.Get("/guestbook/export", guestbookHandler.ExportCSV)   // GET /panel/guestbook/export

	// --- Gönderim Moderasyonu ---
	panelGroup.Post("/submissions/approve/:id", guestbookHandler.ApproveSubmission) // POST /panel/submissions/approve/{id}
	panelGroup.Post("/submissions/delete/:id", guestbookHandler.DeleteSubmission)   // POST /panel/submissions/delete/{id}
	panelGroup.Delete("/submissions/delete/:id", guestbookHandler.DeleteSubmission) // DELETE /panel/submissions/delete/{id} (JS/API için)
	panelGroup.Post("/submissions/bulk-approve", guestbookHandler.BulkApprove)      // POST /panel/submissions/bulk-approve
	panelGroup.Post("/submissions/bulk-delete", guestbookHandler.BulkDelete)        // POST /panel/submissions/bulk-delete

	// --- Galeri ---
	panelGroup.Get("/media", mediaHandler.ListMedia)            // GET /panel/media
	panelGroup.Post("/media/export", mediaHandler.ExportArchive) // POST /panel/media/export (seçim ZIP indirme)
}
