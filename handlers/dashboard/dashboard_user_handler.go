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

// UserHandler kullanıcı yönetimi için handler (Dashboard).
type UserHandler struct {
	service services.IUserService
}

// NewUserHandler yeni bir UserHandler örneği oluşturur.
func NewUserHandler() *UserHandler {
	return &UserHandler{service: services.NewUserService()}
}

// ListUsers tüm kullanıcıları listeler (Admin için).
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.service.GetAllUsersPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":     "Kullanıcılar",
		"CsrfToken": c.Locals("csrf"),
		"Result":    paginatedResult,
		"Params":    params,
	}
	renderer.SetFlashMessages(renderData, flashData)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.User{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}
