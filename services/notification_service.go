package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"lovelens.link/configs/configslog"

	"go.uber.org/zap"
)

// SubmissionNotice yeni gönderim bildiriminin JSON gövdesi.
// Gateway sözleşmesi: tek bir POST, 2xx kabul, diğer her şey yutulur.
type SubmissionNotice struct {
	Recipient  string `json:"boothOwnerEmail"`
	CoupleName string `json:"coupleName"`
	GuestName  string `json:"guestName"`
	Message    string `json:"message"`
	HasMedia   bool   `json:"hasMedia"`
}

// INotificationService dışa giden e-posta bildirimleri için arayüz.
type INotificationService interface {
	NotifySubmission(notice SubmissionNotice)
}

// NotificationService relay URL'ine fire-and-forget POST atar.
// Bildirim hatası hiçbir koşulda gönderim akışını etkilemez.
type NotificationService struct {
	gatewayURL string
	client     *http.Client
}

// NewNotificationService yeni bir NotificationService örneği oluşturur.
// NOTIFY_GATEWAY_URL boşsa bildirimler sessizce devre dışıdır.
func NewNotificationService() INotificationService {
	return &NotificationService{
		gatewayURL: strings.TrimSpace(os.Getenv("NOTIFY_GATEWAY_URL")),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifySubmission bildirimi ayrık bir goroutine'de gönderir. Kendi
// recover sınırı vardır; gönderim yolu bu çağrıyı asla beklemez.
func (s *NotificationService) NotifySubmission(notice SubmissionNotice) {
	if s.gatewayURL == "" {
		return
	}
	if notice.GuestName == "" {
		notice.GuestName = "Anonymous"
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				configslog.Log.Error("NotifySubmission: panic yakalandı", zap.Any("panic_info", r))
			}
		}()
		s.send(notice)
	}()
}

// send tek POST isteğini yapar; tüm hatalar loglanır ve yutulur.
func (s *NotificationService) send(notice SubmissionNotice) {
	body, err := json.Marshal(notice)
	if err != nil {
		configslog.Log.Error("NotifySubmission: JSON oluşturulamadı", zap.Error(err))
		return
	}

	resp, err := s.client.Post(s.gatewayURL, "application/json", bytes.NewReader(body))
	if err != nil {
		configslog.Log.Warn("NotifySubmission: gateway'e ulaşılamadı", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		configslog.Log.Warn("NotifySubmission: gateway isteği reddetti",
			zap.Int("status", resp.StatusCode), zap.String("recipient", notice.Recipient))
		return
	}
	configslog.SLog.Debugf("Gönderim bildirimi iletildi: %s", notice.Recipient)
}

var _ INotificationService = (*NotificationService)(nil)
