package renderer

import (
	"net/http"

	"lovelens.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View katmanındaki flash anahtarları.
const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

// SetFlashMessages flash verilerini render map'ine kopyalar.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render ortak view render yardımcısı. Status verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, view string, layout string, data fiber.Map, status ...int) error {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	// Oturum bilgisi tüm sayfalarda gerekir
	if _, ok := data["UserName"]; !ok {
		if name, ok := c.Locals("userName").(string); ok {
			data["UserName"] = name
		}
	}
	return c.Status(code).Render(view, data, layout)
}
