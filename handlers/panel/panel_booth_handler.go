package handlers

import (
	"errors"
	"net/http"
	"time"

	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelBoothHandler booth kurulumu ve ayarları için handler.
type PanelBoothHandler struct {
	boothService services.IBoothService
}

// NewPanelBoothHandler yeni bir PanelBoothHandler örneği oluşturur.
func NewPanelBoothHandler() *PanelBoothHandler {
	return &PanelBoothHandler{boothService: services.NewBoothService()}
}

// boothSettingsFromForm form alanlarını servis girdisine çevirir.
func boothSettingsFromForm(c *fiber.Ctx) (services.BoothSettingsInput, error) {
	weddingDate, err := time.Parse("2006-01-02", c.FormValue("wedding_date"))
	if err != nil {
		return services.BoothSettingsInput{}, services.ErrBoothInvalidInput
	}
	return services.BoothSettingsInput{
		CoupleName:         c.FormValue("couple_name"),
		WeddingDate:        weddingDate,
		Email:              c.FormValue("email"),
		IsPublic:           formBool(c, "is_public"),
		RequiresApproval:   formBool(c, "requires_approval"),
		EmailNotifications: formBool(c, "email_notifications"),
	}, nil
}

func formBool(c *fiber.Ctx, name string) bool {
	v := c.FormValue(name, "false")
	return v == "true" || v == "on" || v == "1"
}

// ShowCreateBooth booth kurulum formunu gösterir. Booth zaten varsa
// ana sayfaya döner.
func (h *PanelBoothHandler) ShowCreateBooth(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}
	if _, err := h.boothService.GetBoothForOwner(c.UserContext(), userID); err == nil {
		return c.Redirect("/panel/home", fiber.StatusFound)
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Booth Oluştur",
		"CsrfToken": c.Locals("csrf"),
		"FormData":  flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/booth_create", "layouts/panel_layout", renderData, http.StatusOK)
}

// CreateBooth formdan gelen verilerle booth'u oluşturur.
func (h *PanelBoothHandler) CreateBooth(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	input, err := boothSettingsFromForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Lütfen tüm alanları doğru doldurun.")
		return c.Redirect("/panel/booth/create", fiber.StatusSeeOther)
	}

	booth, err := h.boothService.CreateBooth(c.UserContext(), userID, input)
	if err != nil {
		if errors.Is(err, services.ErrBoothAlreadyExists) {
			return c.Redirect("/panel/home", fiber.StatusFound)
		}
		if !errors.Is(err, services.ErrBoothInvalidInput) {
			configslog.Log.Error("CreateBooth: oluşturma hatası", zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, fiber.Map{
			"CoupleName": input.CoupleName, "Email": input.Email,
		})
		return c.Redirect("/panel/booth/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		"Booth oluşturuldu! Erişim kodunuz: "+booth.Code)
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// ShowSettings ayar formunu gösterir.
func (h *PanelBoothHandler) ShowSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	booth, err := h.boothService.GetBoothForOwner(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return c.Redirect("/panel/booth/create", fiber.StatusFound)
		}
		configslog.Log.Error("ShowSettings: booth alınamadı", zap.Uint("userID", userID), zap.Error(err))
		return c.Redirect("/panel/home")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Ayarlar",
		"Booth":     booth,
		"CsrfToken": c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/settings", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdateSettings booth ayarlarını kaydeder. Erişim kodu bu formdan
// değiştirilemez.
func (h *PanelBoothHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	booth, err := h.boothService.GetBoothForOwner(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Booth bulunamadı.")
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	input, err := boothSettingsFromForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Lütfen tüm alanları doğru doldurun.")
		return c.Redirect("/panel/settings", fiber.StatusSeeOther)
	}

	if err := h.boothService.UpdateBoothSettings(c.UserContext(), booth.ID, userID, input); err != nil {
		if !errors.Is(err, services.ErrBoothInvalidInput) {
			configslog.Log.Error("UpdateSettings: güncelleme hatası", zap.Uint("boothID", booth.ID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/settings", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Ayarlar kaydedildi.")
	return c.Redirect("/panel/settings", fiber.StatusFound)
}
