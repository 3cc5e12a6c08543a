package middlewares

import (
	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/services"
	"lovelens.link/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware oturum açmış kullanıcı gerektirir. Kimlik doğrulanmamışsa
// login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Lütfen önce giriş yapın.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// StatusMiddleware hesabın hala aktif olduğunu doğrular. Pasife alınmış
// hesapların mevcut oturumları da düşürülür.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	user, err := services.NewUserService().GetUserByID(c.UserContext(), userID)
	if err != nil || !user.IsActive {
		configslog.SLog.Warnf("Pasif hesap oturumu sonlandırılıyor: UserID %d", userID)
		if sess, serr := utils.SessionStart(c); serr == nil {
			_ = utils.DestroySession(sess)
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesabınız aktif değil.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// GuestMiddleware yalnızca oturumu olmayan ziyaretçilere izin verir.
// Giriş yapmış kullanıcı kendi ana sayfasına yönlendirilir.
func GuestMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if ok && userID != 0 {
		if isSystem, sok := c.Locals("isSystem").(bool); sok && isSystem {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Next()
}

// RequireUser normal (IsSystem == false) kullanıcı gerektiren rotalar için.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); !ok || isSystem {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireSystem sistem yöneticisi (IsSystem == true) gerektiren rotalar için.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); !ok || !isSystem {
			return c.Redirect("/panel/home", fiber.StatusFound)
		}
		return c.Next()
	}
}
