package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/moderation"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelGuestbookHandler anı defteri (mesaj) yönetimi için handler.
type PanelGuestbookHandler struct {
	boothService      services.IBoothService
	submissionService services.ISubmissionService
	exportService     services.IExportService
}

// NewPanelGuestbookHandler yeni bir PanelGuestbookHandler örneği oluşturur.
func NewPanelGuestbookHandler() *PanelGuestbookHandler {
	return &PanelGuestbookHandler{
		boothService:      services.NewBoothService(),
		submissionService: services.NewSubmissionService(),
		exportService:     services.NewExportService(),
	}
}

// ownedBooth oturumdaki çiftin booth'unu getirir; yoksa kuruluma yönlendirir.
func ownedBooth(c *fiber.Ctx, boothService services.IBoothService) (*models.Booth, uint, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, 0, c.Redirect("/auth/login")
	}
	booth, err := boothService.GetBoothForOwner(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return nil, 0, c.Redirect("/panel/booth/create", fiber.StatusFound)
		}
		configslog.Log.Error("ownedBooth: booth alınamadı", zap.Uint("userID", userID), zap.Error(err))
		return nil, 0, c.Redirect("/panel/home")
	}
	return booth, userID, nil
}

// parseIDList virgülle ayrılmış id listesini çözer; bozuk girdiler atlanır.
func parseIDList(raw string) []uint {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil || n == 0 {
			continue
		}
		ids = append(ids, uint(n))
	}
	return ids
}

// selectedVisibleIDs gönderilen seçim kümesini o anki görünümle kesiştirir.
// Filtre sunucuda yeniden uygulanır: istemcide artık görünmeyen bir kayıt
// toplu işleme giremez.
func selectedVisibleIDs(c *fiber.Ctx, subs []models.Submission, view moderation.View) []uint {
	filter := moderation.ParseFilter(c.FormValue("filter"))
	term := c.FormValue("q")
	visible := moderation.Visible(subs, view, filter, term)

	selection := moderation.NewSelectionSet()
	for _, id := range parseIDList(c.FormValue("ids")) {
		selection.Toggle(id)
	}
	return selection.VisibleSelected(visible)
}

// ListGuestbook mesajlı gönderimleri filtre ve aramayla listeler.
func (h *PanelGuestbookHandler) ListGuestbook(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	subs, err := h.submissionService.ListSubmissions(c.UserContext(), booth.ID, userID)
	if err != nil {
		configslog.Log.Error("ListGuestbook: gönderimler alınamadı", zap.Uint("boothID", booth.ID), zap.Error(err))
		subs = nil
	}

	filter := moderation.ParseFilter(c.Query("filter"))
	term := c.Query("q")
	visible := moderation.Visible(subs, moderation.ViewGuestbook, filter, term)
	// Sayaçlar arama teriminden etkilenmez
	counts := moderation.Count(subs, moderation.ViewGuestbook)

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":       "Anı Defteri",
		"Booth":       booth,
		"Submissions": visible,
		"Counts":      counts,
		"Filter":      string(filter),
		"Query":       term,
		"CsrfToken":   c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/guestbook", "layouts/panel_layout", renderData, http.StatusOK)
}

// ApproveSubmission tek gönderimi onaylar.
func (h *PanelGuestbookHandler) ApproveSubmission(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect(backTo(c), fiber.StatusSeeOther)
	}

	if _, err := h.submissionService.ApproveSubmission(c.UserContext(), uint(id), userID); err != nil {
		if !errors.Is(err, services.ErrSubmissionNotFound) {
			configslog.Log.Error("ApproveSubmission: onay hatası", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gönderim onaylandı.")
	}
	return c.Redirect(backTo(c), fiber.StatusSeeOther)
}

// DeleteSubmission tek gönderimi ve varsa medyasını siler.
func (h *PanelGuestbookHandler) DeleteSubmission(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect(backTo(c), fiber.StatusSeeOther)
	}

	if err := h.submissionService.DeleteSubmission(c.UserContext(), uint(id), userID); err != nil {
		if !errors.Is(err, services.ErrSubmissionNotFound) {
			configslog.Log.Error("DeleteSubmission: silme hatası", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Gönderim silindi.")
	}
	return c.Redirect(backTo(c), fiber.StatusSeeOther)
}

// BulkApprove seçili ve görünür gönderimleri topluca onaylar.
func (h *PanelGuestbookHandler) BulkApprove(c *fiber.Ctx) error {
	return h.bulk(c, "onaylandı", h.submissionService.BulkApprove)
}

// BulkDelete seçili ve görünür gönderimleri topluca siler.
func (h *PanelGuestbookHandler) BulkDelete(c *fiber.Ctx) error {
	return h.bulk(c, "silindi", h.submissionService.BulkDelete)
}

func (h *PanelGuestbookHandler) bulk(c *fiber.Ctx, verb string, op func(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*services.BulkOutcome, error)) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	subs, err := h.submissionService.ListSubmissions(c.UserContext(), booth.ID, userID)
	if err != nil {
		configslog.Log.Error("bulk: gönderimler alınamadı", zap.Uint("boothID", booth.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Gönderimler alınamadı.")
		return c.Redirect(backTo(c), fiber.StatusSeeOther)
	}

	view := moderation.ViewGuestbook
	if c.FormValue("return", "") == "media" {
		view = moderation.ViewMedia
	}
	ids := selectedVisibleIDs(c, subs, view)
	if len(ids) == 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Seçili gönderim yok.")
		return c.Redirect(backTo(c), fiber.StatusSeeOther)
	}

	outcome, err := op(c.UserContext(), booth.ID, userID, ids)
	if err != nil {
		configslog.Log.Error("bulk: toplu işlem hatası", zap.Uint("boothID", booth.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect(backTo(c), fiber.StatusSeeOther)
	}

	if outcome.Failed > 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey,
			fmt.Sprintf("%d gönderim %s, %d gönderim işlenemedi.", outcome.Succeeded, verb, outcome.Failed))
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
			fmt.Sprintf("%d gönderim %s.", outcome.Succeeded, verb))
	}
	return c.Redirect(backTo(c), fiber.StatusSeeOther)
}

// backTo işlem sonrası dönülecek listeyi belirler (mesajlar veya medya).
func backTo(c *fiber.Ctx) string {
	if c.FormValue("return", "") == "media" {
		return "/panel/media"
	}
	return "/panel/guestbook"
}

// ExportCSV onaylı mesajları CSV olarak indirir.
func (h *PanelGuestbookHandler) ExportCSV(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	result, err := h.exportService.ExportGuestbookCSV(c.UserContext(), booth.ID, userID)
	if err != nil {
		if errors.Is(err, services.ErrExportNothing) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dışa aktarılacak mesaj yok.")
		} else {
			configslog.Log.Error("ExportCSV: dışa aktarma hatası", zap.Uint("boothID", booth.ID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dışa aktarma başarısız oldu.")
		}
		return c.Redirect("/panel/guestbook", fiber.StatusSeeOther)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Send(result.Data)
}
