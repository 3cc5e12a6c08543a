package handlers

import (
	"errors"
	"net/http"

	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Panel ana sayfasında gösterilen son gönderim sayısı.
const recentSubmissionLimit = 5

// PanelHomeHandler panel ana sayfası için handler.
type PanelHomeHandler struct {
	boothService      services.IBoothService
	submissionService services.ISubmissionService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		boothService:      services.NewBoothService(),
		submissionService: services.NewSubmissionService(),
	}
}

// PanelHomeHandler çiftin özet sayfasını gösterir: booth bilgisi,
// sayaçlar ve son onaylı gönderimler. Booth yoksa kuruluma yönlendirir.
func (h *PanelHomeHandler) PanelHomeHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	booth, err := h.boothService.GetBoothForOwner(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return c.Redirect("/panel/booth/create", fiber.StatusFound)
		}
		configslog.Log.Error("PanelHome: booth alınamadı", zap.Uint("userID", userID), zap.Error(err))
		return renderer.Render(c, "errors/500", "layouts/error_layout", fiber.Map{
			"Title": "Sunucu Hatası", "Message": "Booth bilgileri alınırken bir sorun oluştu.",
		}, http.StatusInternalServerError)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Panel",
		"Booth":     booth,
		"CsrfToken": c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)

	stats, err := h.boothService.GetBoothStats(c.UserContext(), booth.ID, userID)
	if err != nil {
		configslog.Log.Error("PanelHome: istatistikler alınamadı", zap.Uint("boothID", booth.ID), zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "İstatistikler alınırken bir sorun oluştu."
		stats = &services.BoothStats{}
	}
	renderData["Stats"] = stats

	recent, err := h.submissionService.ListRecentApproved(c.UserContext(), booth.ID, userID, recentSubmissionLimit)
	if err != nil {
		configslog.Log.Error("PanelHome: son gönderimler alınamadı", zap.Uint("boothID", booth.ID), zap.Error(err))
		recent = nil
	}
	renderData["Recent"] = recent

	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData, http.StatusOK)
}
