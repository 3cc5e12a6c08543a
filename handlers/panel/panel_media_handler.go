package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"lovelens.link/configs/configslog"
	"lovelens.link/pkg/flashmessages"
	"lovelens.link/pkg/moderation"
	"lovelens.link/pkg/renderer"
	"lovelens.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelMediaHandler fotoğraf/video galerisi yönetimi için handler.
type PanelMediaHandler struct {
	boothService      services.IBoothService
	submissionService services.ISubmissionService
	exportService     services.IExportService
}

// NewPanelMediaHandler yeni bir PanelMediaHandler örneği oluşturur.
func NewPanelMediaHandler() *PanelMediaHandler {
	return &PanelMediaHandler{
		boothService:      services.NewBoothService(),
		submissionService: services.NewSubmissionService(),
		exportService:     services.NewExportService(),
	}
}

// ListMedia medyalı gönderimleri filtre ve aramayla listeler.
func (h *PanelMediaHandler) ListMedia(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	subs, err := h.submissionService.ListSubmissions(c.UserContext(), booth.ID, userID)
	if err != nil {
		configslog.Log.Error("ListMedia: gönderimler alınamadı", zap.Uint("boothID", booth.ID), zap.Error(err))
		subs = nil
	}

	filter := moderation.ParseFilter(c.Query("filter"))
	term := c.Query("q")
	visible := moderation.Visible(subs, moderation.ViewMedia, filter, term)
	counts := moderation.Count(subs, moderation.ViewMedia)

	flashData, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":       "Galeri",
		"Booth":       booth,
		"Submissions": visible,
		"Counts":      counts,
		"Filter":      string(filter),
		"Query":       term,
		"CsrfToken":   c.Locals("csrf"),
	}
	renderer.SetFlashMessages(renderData, flashData)
	return renderer.Render(c, "panel/media", "layouts/panel_layout", renderData, http.StatusOK)
}

// ExportArchive seçili medyaları (seçim boşsa tümünü) ZIP olarak indirir.
func (h *PanelMediaHandler) ExportArchive(c *fiber.Ctx) error {
	booth, userID, err := ownedBooth(c, h.boothService)
	if booth == nil {
		return err
	}

	ids := parseIDList(c.FormValue("ids"))
	result, err := h.exportService.ExportMediaArchive(c.UserContext(), booth.ID, userID, ids)
	if err != nil {
		if errors.Is(err, services.ErrExportNothing) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "İndirilecek medya yok.")
		} else {
			configslog.Log.Error("ExportArchive: arşiv hatası", zap.Uint("boothID", booth.ID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Arşiv hazırlanamadı.")
		}
		return c.Redirect("/panel/media", fiber.StatusSeeOther)
	}

	if result.Included < result.Requested {
		configslog.SLog.Warnf("Arşiv eksik tamamlandı: Booth %d, %d/%d dosya",
			booth.ID, result.Included, result.Requested)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Send(result.Data)
}
