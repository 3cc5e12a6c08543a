package routes

import (
	handlers "lovelens.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicBoothRoutes misafir erişimini (örn. /AB3KX9) yönetecek
// rotaları tanımlar. Diğer özel gruplardan SONRA kaydedilmelidir.
func registerPublicBoothRoutes(app *fiber.App) {
	boothHandler := handlers.NewBoothHandler()

	app.Get("/:code", boothHandler.ShowBooth)
	app.Post("/:code/submissions", boothHandler.SubmitEntry)
}
