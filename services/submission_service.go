package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"lovelens.link/configs"
	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/moderation"
	"lovelens.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionServiceError özel servis hataları
type SubmissionServiceError string

func (e SubmissionServiceError) Error() string { return string(e) }

const (
	ErrSubmissionNotFound       SubmissionServiceError = "gönderim bulunamadı"
	ErrSubmissionInvalidInput   SubmissionServiceError = "geçersiz girdi verisi"
	ErrSubmissionMessageMissing SubmissionServiceError = "mesaj alanı zorunludur"
	ErrSubmissionForbidden      SubmissionServiceError = "bu işlem için yetkiniz yok"
	ErrSubmissionFileTooLarge   SubmissionServiceError = "dosya boyutu izin verilen sınırı aşıyor"
	ErrSubmissionMediaRejected  SubmissionServiceError = "desteklenmeyen medya türü"
	ErrSubmissionCreateFailed   SubmissionServiceError = "gönderim kaydedilemedi"
)

// DefaultMaxUploadMB MAX_UPLOAD_SIZE_MB tanımlı değilse kullanılır.
const DefaultMaxUploadMB = 10

// bulkWorkers toplu işlemlerdeki eşzamanlı işçi sayısı.
const bulkWorkers = 4

// DraftFile misafirin yüklediği tek bir dosyayı taşır. Open, içerik
// akışını işlem sırasında açar; servis kapatmaktan sorumludur.
type DraftFile struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// SubmissionDraft misafir formundan gelen ham veri.
type SubmissionDraft struct {
	GuestName string
	Message   string
	Files     []DraftFile
}

// FileResult tek dosyanın işlenme sonucu.
type FileResult struct {
	FileName string
	Err      error
}

// CreateOutcome bir misafir gönderiminin toplam sonucu. Dosyalar
// birbirinden bağımsız işlenir; bir dosyanın hatası diğerlerini durdurmaz.
type CreateOutcome struct {
	Created     []models.Submission
	FileResults []FileResult
	Pending     bool
}

// BulkOutcome toplu onay/silme işleminin özeti.
type BulkOutcome struct {
	Requested int
	Succeeded int
	Failed    int
	Errors    map[uint]error
}

// ISubmissionService gönderim işlemleri için arayüz.
type ISubmissionService interface {
	CreateSubmissions(ctx context.Context, boothCode string, draft SubmissionDraft) (*CreateOutcome, error)
	ListSubmissions(ctx context.Context, boothID, requestingUserID uint) ([]models.Submission, error)
	ListRecentApproved(ctx context.Context, boothID, requestingUserID uint, limit int) ([]models.Submission, error)
	ListPublicSubmissions(ctx context.Context, boothCode string) ([]models.Submission, error)
	ApproveSubmission(ctx context.Context, submissionID, requestingUserID uint) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, submissionID, requestingUserID uint) error
	BulkApprove(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*BulkOutcome, error)
	BulkDelete(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*BulkOutcome, error)
	GetSubmissionCount(ctx context.Context) (int64, error)
}

// SubmissionService ISubmissionService arayüzünü uygular.
type SubmissionService struct {
	repo        repositories.ISubmissionRepository
	boothRepo   repositories.IBoothRepository
	media       IMediaService
	notifier    INotificationService
	db          *gorm.DB
	maxUploadMB int64
}

// NewSubmissionService yeni bir SubmissionService örneği oluşturur.
func NewSubmissionService() ISubmissionService {
	return &SubmissionService{
		repo:        repositories.NewSubmissionRepository(),
		boothRepo:   repositories.NewBoothRepository(),
		media:       NewMediaService(),
		notifier:    NewNotificationService(),
		db:          configs.GetDB(),
		maxUploadMB: maxUploadMBFromEnv(),
	}
}

func maxUploadMBFromEnv() int64 {
	raw := os.Getenv("MAX_UPLOAD_SIZE_MB")
	if raw == "" {
		return DefaultMaxUploadMB
	}
	mb, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || mb <= 0 {
		configslog.SLog.Warnf("MAX_UPLOAD_SIZE_MB geçersiz (%q), varsayılan %d MB kullanılıyor", raw, DefaultMaxUploadMB)
		return DefaultMaxUploadMB
	}
	return mb
}

// mediaKindFromContentType içeriğin türünü MIME ön ekinden belirler.
func mediaKindFromContentType(contentType string) (models.MediaKind, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaKindPhoto, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaKindVideo, nil
	default:
		return "", ErrSubmissionMediaRejected
	}
}

// CreateSubmissions misafir gönderimini işler. Mesaj zorunludur; her
// dosya bağımsız bir kayda dönüşür ve aynı mesaj metnini paylaşır.
// Yükleme hatası yalnızca o dosyanın kaydını iptal eder.
func (s *SubmissionService) CreateSubmissions(ctx context.Context, boothCode string, draft SubmissionDraft) (*CreateOutcome, error) {
	message := strings.TrimSpace(draft.Message)
	if message == "" {
		return nil, ErrSubmissionMessageMissing
	}

	booth, err := s.boothRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(boothCode)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}

	// Dosya boyutları işleme başlamadan doğrulanır
	maxBytes := s.maxUploadMB * 1024 * 1024
	for _, f := range draft.Files {
		if f.Size > maxBytes {
			return nil, ErrSubmissionFileTooLarge
		}
		if _, err := mediaKindFromContentType(f.ContentType); err != nil {
			return nil, err
		}
	}

	guestName := strings.TrimSpace(draft.GuestName)
	approved := !booth.RequiresApproval
	outcome := &CreateOutcome{Pending: booth.RequiresApproval}

	if len(draft.Files) == 0 {
		sub := models.Submission{
			BoothID:    booth.ID,
			GuestName:  guestName,
			Message:    message,
			IsApproved: approved,
		}
		if err := s.repo.Create(ctx, &sub); err != nil {
			configslog.Log.Error("CreateSubmissions: mesaj kaydı başarısız", zap.Uint("boothID", booth.ID), zap.Error(err))
			return nil, ErrSubmissionCreateFailed
		}
		outcome.Created = append(outcome.Created, sub)
	}

	for _, f := range draft.Files {
		kind, _ := mediaKindFromContentType(f.ContentType)
		sub, err := s.createMediaSubmission(ctx, booth.ID, guestName, message, approved, kind, f)
		if err != nil {
			configslog.Log.Error("CreateSubmissions: dosya işlenemedi",
				zap.Uint("boothID", booth.ID), zap.String("file", f.Name), zap.Error(err))
			outcome.FileResults = append(outcome.FileResults, FileResult{FileName: f.Name, Err: err})
			continue
		}
		outcome.FileResults = append(outcome.FileResults, FileResult{FileName: f.Name})
		outcome.Created = append(outcome.Created, *sub)
	}

	if len(outcome.Created) == 0 {
		return outcome, ErrSubmissionCreateFailed
	}

	// Bildirim misafir gönderimi başına bir kez, ana akıştan kopuk gider
	if booth.EmailNotifications {
		s.notifier.NotifySubmission(SubmissionNotice{
			Recipient:  booth.Email,
			CoupleName: booth.CoupleName,
			GuestName:  guestName,
			Message:    message,
			HasMedia:   len(draft.Files) > 0,
		})
	}

	configslog.SLog.Infof("Gönderim alındı: Booth %d, %d kayıt (%d dosya)", booth.ID, len(outcome.Created), len(draft.Files))
	return outcome, nil
}

// createMediaSubmission tek dosyayı yükler ve kaydını oluşturur.
func (s *SubmissionService) createMediaSubmission(ctx context.Context, boothID uint, guestName, message string, approved bool, kind models.MediaKind, f DraftFile) (*models.Submission, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("dosya açılamadı: %w", err)
	}
	defer rc.Close()

	key := s.media.NewObjectKey(f.Name)
	publicURL, err := s.media.Upload(ctx, key, rc, f.ContentType)
	if err != nil {
		return nil, err
	}

	sub := models.Submission{
		BoothID:    boothID,
		GuestName:  guestName,
		Message:    message,
		MediaURL:   publicURL,
		MediaKind:  kind,
		IsApproved: approved,
	}
	if err := s.repo.Create(ctx, &sub); err != nil {
		// Kayıt düşmezse yüklenen nesne yetim kalmasın
		if derr := s.media.Delete(ctx, key); derr != nil {
			configslog.SLog.Warnf("Yetim medya silinemedi: %s (%v)", key, derr)
		}
		return nil, ErrSubmissionCreateFailed
	}
	return &sub, nil
}

// ListSubmissions booth sahibinin tüm gönderimlerini getirir.
func (s *SubmissionService) ListSubmissions(ctx context.Context, boothID, requestingUserID uint) ([]models.Submission, error) {
	if err := s.authorizeOwner(ctx, boothID, requestingUserID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByBoothID(ctx, boothID)
}

// ListRecentApproved panel ana sayfası için son onaylı gönderimleri getirir.
func (s *SubmissionService) ListRecentApproved(ctx context.Context, boothID, requestingUserID uint, limit int) ([]models.Submission, error) {
	if err := s.authorizeOwner(ctx, boothID, requestingUserID); err != nil {
		return nil, err
	}
	return s.repo.FindRecentApproved(ctx, boothID, limit)
}

// ListPublicSubmissions misafir galerisi için onaylı medya gönderimlerini getirir.
func (s *SubmissionService) ListPublicSubmissions(ctx context.Context, boothCode string) ([]models.Submission, error) {
	booth, err := s.boothRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(boothCode)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	if !booth.IsPublic {
		return []models.Submission{}, nil
	}
	subs, err := s.repo.FindAllByBoothID(ctx, booth.ID)
	if err != nil {
		return nil, err
	}
	approved := moderation.Visible(subs, moderation.ViewMedia, moderation.FilterApproved, "")
	gallery := make([]models.Submission, 0, len(approved))
	for _, sub := range approved {
		if sub.HasMedia() {
			gallery = append(gallery, sub)
		}
	}
	return gallery, nil
}

// ApproveSubmission gönderimi onaylar. Zaten onaylıysa yazma yapılmaz.
func (s *SubmissionService) ApproveSubmission(ctx context.Context, submissionID, requestingUserID uint) (*models.Submission, error) {
	sub, err := s.repo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if err := s.authorizeOwner(ctx, sub.BoothID, requestingUserID); err != nil {
		return nil, err
	}
	if sub.IsApproved {
		return sub, nil
	}

	sub.IsApproved = true
	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, requestingUserID)
	if err := s.repo.Update(ctxWithUser, sub); err != nil {
		configslog.Log.Error("ApproveSubmission: güncelleme başarısız", zap.Uint("id", submissionID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Gönderim onaylandı: ID %d (Onaylayan: %d)", submissionID, requestingUserID)
	return sub, nil
}

// DeleteSubmission kaydı siler. Medya nesnesi önce elle silinmeye
// çalışılır; depolama hatası kaydın silinmesini engellemez.
func (s *SubmissionService) DeleteSubmission(ctx context.Context, submissionID, requestingUserID uint) error {
	sub, err := s.repo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if err := s.authorizeOwner(ctx, sub.BoothID, requestingUserID); err != nil {
		return err
	}

	if sub.HasMedia() {
		key := s.media.ObjectKeyFromURL(sub.MediaURL)
		if key != "" {
			if derr := s.media.Delete(ctx, key); derr != nil {
				configslog.SLog.Warnf("Medya nesnesi silinemedi, kayıt yine de siliniyor: %s (%v)", key, derr)
			}
		}
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, requestingUserID)
	if err := s.repo.Delete(ctxWithUser, sub, requestingUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		configslog.Log.Error("DeleteSubmission: silme başarısız", zap.Uint("id", submissionID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Gönderim silindi: ID %d (Silen: %d)", submissionID, requestingUserID)
	return nil
}

// BulkApprove birden çok gönderimi sınırlı işçi havuzuyla onaylar.
// Tek bir hata diğer kayıtların işlenmesini durdurmaz.
func (s *SubmissionService) BulkApprove(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*BulkOutcome, error) {
	return s.runBulk(ctx, boothID, requestingUserID, ids, func(ctx context.Context, id uint) error {
		_, err := s.ApproveSubmission(ctx, id, requestingUserID)
		return err
	})
}

// BulkDelete birden çok gönderimi sınırlı işçi havuzuyla siler.
func (s *SubmissionService) BulkDelete(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*BulkOutcome, error) {
	return s.runBulk(ctx, boothID, requestingUserID, ids, func(ctx context.Context, id uint) error {
		return s.DeleteSubmission(ctx, id, requestingUserID)
	})
}

func (s *SubmissionService) runBulk(ctx context.Context, boothID, requestingUserID uint, ids []uint, op func(context.Context, uint) error) (*BulkOutcome, error) {
	if err := s.authorizeOwner(ctx, boothID, requestingUserID); err != nil {
		return nil, err
	}

	outcome := &BulkOutcome{Requested: len(ids), Errors: make(map[uint]error)}
	if len(ids) == 0 {
		return outcome, nil
	}

	jobs := make(chan uint)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < bulkWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				err := op(ctx, id)
				mu.Lock()
				if err != nil {
					outcome.Failed++
					outcome.Errors[id] = err
				} else {
					outcome.Succeeded++
				}
				mu.Unlock()
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	configslog.SLog.Infof("Toplu işlem tamamlandı: Booth %d, %d istendi, %d başarılı, %d hatalı",
		boothID, outcome.Requested, outcome.Succeeded, outcome.Failed)
	return outcome, nil
}

// GetSubmissionCount toplam gönderim sayısını döndürür (Dashboard).
func (s *SubmissionService) GetSubmissionCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

// authorizeOwner booth'un istemciye ait olduğunu doğrular.
func (s *SubmissionService) authorizeOwner(ctx context.Context, boothID, requestingUserID uint) error {
	booth, err := s.boothRepo.FindByID(ctx, boothID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBoothNotFound
		}
		return err
	}
	if booth.OwnerUserID != requestingUserID {
		return ErrSubmissionForbidden
	}
	return nil
}

var _ ISubmissionService = (*SubmissionService)(nil)
