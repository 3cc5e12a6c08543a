package handlers

import (
	"net/http"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/queryparams"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BoothHandler booth yönetimi için handler (Dashboard).
type BoothHandler struct {
	service services.IBoothService
}

// NewBoothHandler yeni bir BoothHandler örneği oluşturur.
func NewBoothHandler() *BoothHandler {
	return &BoothHandler{service: services.NewBoothService()}
}

// ListBooths tüm booth'ları listeler (Admin için).
func (h *BoothHandler) ListBooths(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.service.GetAllBoothsPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":     "Tüm Booth'lar",
		"CsrfToken": c.Locals("csrf"),
		"Result":    paginatedResult,
		"Params":    params,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Booth'lar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Booth{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListBooths Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/booths/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}
