package handlers

import (
	"net/http"

	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeHandler dashboard ana sayfası için handler (Admin).
type HomeHandler struct {
	userService       services.IUserService
	boothService      services.IBoothService
	submissionService services.ISubmissionService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		userService:       services.NewUserService(),
		boothService:      services.NewBoothService(),
		submissionService: services.NewSubmissionService(),
	}
}

// HomePage sistem genelindeki sayıları gösterir.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userCount, err := h.userService.GetUserCount(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard Home: kullanıcı sayısı alınamadı", zap.Error(err))
	}
	boothCount, err := h.boothService.GetBoothCount(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard Home: booth sayısı alınamadı", zap.Error(err))
	}
	submissionCount, err := h.submissionService.GetSubmissionCount(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard Home: gönderim sayısı alınamadı", zap.Error(err))
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":           "Dashboard",
		"UserCount":       userCount,
		"BoothCount":      boothCount,
		"SubmissionCount": submissionCount,
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData, http.StatusOK)
}
