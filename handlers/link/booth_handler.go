package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BoothHandler public booth isteklerini yönetir: misafir sayfası ve
// gönderim formu. Kimlik doğrulaması gerekmez, erişim kod iledir.
type BoothHandler struct {
	boothService      services.IBoothService
	submissionService services.ISubmissionService
}

// NewBoothHandler yeni bir BoothHandler örneği oluşturur.
func NewBoothHandler() *BoothHandler {
	return &BoothHandler{
		boothService:      services.NewBoothService(),
		submissionService: services.NewSubmissionService(),
	}
}

// ShowBooth gelen :code parametresine göre misafir sayfasını gösterir.
// Booth public ise onaylı medya galerisi de dahil edilir.
func (h *BoothHandler) ShowBooth(c *fiber.Ctx) error {
	code := c.Params("code")
	if len(code) != models.BoothCodeLength {
		configslog.SLog.Warnf("Geçersiz formatta booth kodu denendi: %s", code)
		return h.renderNotFound(c, "Geçersiz Kod")
	}

	ctx := c.UserContext()
	booth, err := h.boothService.GetBoothByCode(ctx, code)
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return h.renderNotFound(c, "Booth Bulunamadı")
		}
		configslog.Log.Error("ShowBooth: GetBoothByCode error", zap.String("code", code), zap.Error(err))
		return h.renderError(c, "Booth bilgileri alınırken bir sorun oluştu.")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":      booth.CoupleName,
		"Booth":      booth,
		"CsrfToken":  c.Locals("csrf"),
		"ShowGaleri": booth.IsPublic,
	}
	if flashData.Success != "" {
		renderData["Success"] = flashData.Success
	}
	if flashData.Error != "" {
		renderData["Error"] = flashData.Error
	}

	if booth.IsPublic {
		gallery, gerr := h.submissionService.ListPublicSubmissions(ctx, booth.Code)
		if gerr != nil {
			configslog.Log.Error("ShowBooth: galeri alınamadı", zap.String("code", code), zap.Error(gerr))
			gallery = nil
		}
		renderData["Gallery"] = gallery
	}

	return c.Render("public/booth_view", renderData, "layouts/public_layout")
}

// SubmitEntry misafir formunu işler: mesaj ve istenirse medya dosyaları.
func (h *BoothHandler) SubmitEntry(c *fiber.Ctx) error {
	code := c.Params("code")
	redirectPath := "/" + code

	draft := services.SubmissionDraft{
		GuestName: c.FormValue("guest_name"),
		Message:   c.FormValue("message"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			draft.Files = append(draft.Files, draftFileFromHeader(fh))
		}
	}

	outcome, err := h.submissionService.CreateSubmissions(c.UserContext(), code, draft)
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return h.renderNotFound(c, "Booth Bulunamadı")
		}
		switch {
		case errors.Is(err, services.ErrSubmissionMessageMissing),
			errors.Is(err, services.ErrSubmissionFileTooLarge),
			errors.Is(err, services.ErrSubmissionMediaRejected):
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		default:
			configslog.Log.Error("SubmitEntry: gönderim hatası", zap.String("code", code), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gönderiminiz kaydedilemedi, lütfen tekrar deneyin.")
		}
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	msg := "Teşekkürler! Gönderiminiz alındı."
	if outcome.Pending {
		msg = "Teşekkürler! Gönderiminiz onay bekliyor."
	}
	if failed := len(outcome.FileResults) - countOK(outcome.FileResults); failed > 0 {
		msg += " Bazı dosyalar yüklenemedi."
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, msg)
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

func countOK(results []services.FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// draftFileFromHeader multipart başlığını tembel açılan taslağa çevirir.
func draftFileFromHeader(fh *multipart.FileHeader) services.DraftFile {
	return services.DraftFile{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// renderNotFound standart 404 sayfasını render eder.
func (h *BoothHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/error_layout")
}

// renderError standart 500 hata sayfasını render eder.
func (h *BoothHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/error_layout")
}
