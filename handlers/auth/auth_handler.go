package handlers

import (
	"errors"
	"net/http"

	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"
	"lovelens.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş, kayıt ve profil isteklerini yönetir.
type AuthHandler struct {
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Giriş Yap",
		"CsrfToken": c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData, http.StatusOK)
}

// Login form verisiyle oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrUserInvalidCredentials) && !errors.Is(err, services.ErrUserInactive) {
			configslog.Log.Error("Login: beklenmeyen hata", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: session başlatılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum açılamadı, lütfen tekrar deneyin.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem); err != nil {
		configslog.Log.Error("Login: session yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum açılamadı, lütfen tekrar deneyin.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	configslog.SLog.Infof("Giriş başarılı: %s (ID: %d)", user.Email, user.ID)
	if user.IsSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// ShowRegister kayıt formunu gösterir.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Kayıt Ol",
		"CsrfToken": c.Locals("csrf"),
		"FormData":  flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/register", "layouts/auth_layout", renderData, http.StatusOK)
}

// Register yeni bir çift hesabı oluşturur ve oturum açar.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Register(c.UserContext(), name, email, password)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"Name": name, "Email": email})
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	sess, serr := utils.SessionStart(c)
	if serr == nil {
		_ = utils.SetUserSession(sess, user.ID, user.Name, user.IsSystem)
	}

	// Yeni hesap doğruca booth kurulumuna gider
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Hoş geldiniz! Şimdi booth'unuzu oluşturun.")
	return c.Redirect("/panel/booth/create", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		if derr := utils.DestroySession(sess); derr != nil {
			configslog.Log.Error("Logout: session sonlandırılamadı", zap.Error(derr))
		}
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile kullanıcının profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Profile: kullanıcı alınamadı", zap.Uint("userID", userID), zap.Error(err))
		return c.Redirect("/auth/login")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":     "Profilim",
		"User":      user,
		"CsrfToken": c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "auth/profile", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpdatePassword mevcut şifre doğrulamasıyla yeni şifre belirler.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if err := h.userService.UpdatePassword(c.UserContext(), userID, currentPassword, newPassword); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}
