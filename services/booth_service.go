package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"lovelens.link/configs"
	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/moderation"
	"lovelens.link/pkg/queryparams"
	"lovelens.link/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BoothServiceError özel servis hataları
type BoothServiceError string

func (e BoothServiceError) Error() string { return string(e) }

const (
	ErrBoothNotFound         BoothServiceError = "booth bulunamadı"
	ErrBoothCreationFailed   BoothServiceError = "booth oluşturulamadı"
	ErrBoothUpdateFailed     BoothServiceError = "booth güncellenemedi"
	ErrBoothForbidden        BoothServiceError = "bu işlem için yetkiniz yok"
	ErrBoothInvalidInput     BoothServiceError = "geçersiz girdi verisi"
	ErrBoothAlreadyExists    BoothServiceError = "bu hesap için zaten bir booth var"
	ErrBoothCodeGenFailed    BoothServiceError = "benzersiz erişim kodu üretilemedi"
)

// Kod çakışmasında yeniden deneme sayısı.
const boothCodeRetries = 3

var validate = validator.New()

// BoothSettingsInput booth oluşturma ve ayar güncelleme formu.
type BoothSettingsInput struct {
	CoupleName         string    `validate:"required,max=150"`
	WeddingDate        time.Time `validate:"required"`
	Email              string    `validate:"required,email,max=150"`
	IsPublic           bool
	RequiresApproval   bool
	EmailNotifications bool
}

// BoothStats panel ana sayfasındaki sayılar.
type BoothStats struct {
	TotalPhotos      int
	TotalVideos      int
	TotalMessages    int
	PendingApprovals int
}

// IBoothService booth işlemleri için arayüz.
type IBoothService interface {
	CreateBooth(ctx context.Context, ownerUserID uint, input BoothSettingsInput) (*models.Booth, error)
	GetBoothForOwner(ctx context.Context, ownerUserID uint) (*models.Booth, error)
	GetBoothByCode(ctx context.Context, code string) (*models.Booth, error)
	UpdateBoothSettings(ctx context.Context, boothID, updatingUserID uint, input BoothSettingsInput) error
	GetBoothStats(ctx context.Context, boothID, requestingUserID uint) (*BoothStats, error)
	GetAllBoothsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetBoothCount(ctx context.Context) (int64, error)
}

// BoothService IBoothService arayüzünü uygular.
type BoothService struct {
	repo           repositories.IBoothRepository
	submissionRepo repositories.ISubmissionRepository
	db             *gorm.DB
}

// NewBoothService yeni bir BoothService örneği oluşturur.
func NewBoothService() IBoothService {
	return &BoothService{
		repo:           repositories.NewBoothRepository(),
		submissionRepo: repositories.NewSubmissionRepository(),
		db:             configs.GetDB(),
	}
}

// isDuplicateKey unique index ihlalini tanır. TranslateError açık
// olduğundan GORM hatayı çevirir; ham Postgres mesajı da yakalanır.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// ValidateBoothSettings form alanlarını doğrular.
func ValidateBoothSettings(input BoothSettingsInput) error {
	if err := validate.Struct(input); err != nil {
		return ErrBoothInvalidInput
	}
	return nil
}

// CreateBooth sahibi için yeni bir booth oluşturur. Erişim kodu hook'ta
// üretilir; uniqueIndex çakışmasında sınırlı sayıda yeniden denenir.
func (s *BoothService) CreateBooth(ctx context.Context, ownerUserID uint, input BoothSettingsInput) (*models.Booth, error) {
	if ownerUserID == 0 {
		return nil, ErrBoothInvalidInput
	}
	if err := ValidateBoothSettings(input); err != nil {
		return nil, err
	}

	// Çift başına tek booth
	if _, err := s.repo.FindByOwnerUserID(ctx, ownerUserID); err == nil {
		return nil, ErrBoothAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, ownerUserID)
	var lastErr error
	for attempt := 0; attempt < boothCodeRetries; attempt++ {
		booth := models.Booth{
			OwnerUserID:        ownerUserID,
			CoupleName:         strings.TrimSpace(input.CoupleName),
			WeddingDate:        input.WeddingDate,
			Email:              strings.ToLower(strings.TrimSpace(input.Email)),
			IsPublic:           input.IsPublic,
			RequiresApproval:   input.RequiresApproval,
			EmailNotifications: input.EmailNotifications,
		}
		err := s.repo.Create(ctxWithUser, &booth)
		if err == nil {
			configslog.SLog.Infof("Booth oluşturuldu: ID %d, Kod: %s (Sahip: %d)", booth.ID, booth.Code, ownerUserID)
			return &booth, nil
		}
		lastErr = err
		if isDuplicateKey(err) {
			configslog.SLog.Warnf("Booth kodu çakıştı, yeniden deneniyor (deneme %d)", attempt+1)
			continue
		}
		break
	}

	configslog.Log.Error("CreateBooth: oluşturma başarısız", zap.Uint("ownerUserID", ownerUserID), zap.Error(lastErr))
	if lastErr != nil && isDuplicateKey(lastErr) {
		return nil, ErrBoothCodeGenFailed
	}
	return nil, ErrBoothCreationFailed
}

// GetBoothForOwner giriş yapmış çiftin booth'unu getirir.
func (s *BoothService) GetBoothForOwner(ctx context.Context, ownerUserID uint) (*models.Booth, error) {
	if ownerUserID == 0 {
		return nil, ErrBoothInvalidInput
	}
	booth, err := s.repo.FindByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	return booth, nil
}

// GetBoothByCode public erişim kodu ile booth'u getirir (misafir akışı).
func (s *BoothService) GetBoothByCode(ctx context.Context, code string) (*models.Booth, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrBoothNotFound
	}
	booth, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	return booth, nil
}

// UpdateBoothSettings booth ayarlarını günceller. Erişim kodu değişmez.
func (s *BoothService) UpdateBoothSettings(ctx context.Context, boothID, updatingUserID uint, input BoothSettingsInput) error {
	if boothID == 0 || updatingUserID == 0 {
		return ErrBoothInvalidInput
	}
	if err := ValidateBoothSettings(input); err != nil {
		return err
	}

	booth, err := s.repo.FindByID(ctx, boothID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBoothNotFound
		}
		return err
	}
	if booth.OwnerUserID != updatingUserID {
		return ErrBoothForbidden
	}

	booth.CoupleName = strings.TrimSpace(input.CoupleName)
	booth.WeddingDate = input.WeddingDate
	booth.Email = strings.ToLower(strings.TrimSpace(input.Email))
	booth.IsPublic = input.IsPublic
	booth.RequiresApproval = input.RequiresApproval
	booth.EmailNotifications = input.EmailNotifications
	// Code bilinçli olarak kopyalanmaz: oluşturma sonrası değişmez.

	ctxWithUser := context.WithValue(ctx, models.CtxUserIDKey, updatingUserID)
	if err := s.repo.Update(ctxWithUser, booth); err != nil {
		configslog.Log.Error("UpdateBoothSettings: güncelleme başarısız", zap.Uint("id", boothID), zap.Error(err))
		return ErrBoothUpdateFailed
	}
	configslog.SLog.Infof("Booth ayarları güncellendi: ID %d (Güncelleyen: %d)", boothID, updatingUserID)
	return nil
}

// GetBoothStats panel sayaçlarını tam gönderim listesi üzerinden hesaplar.
func (s *BoothService) GetBoothStats(ctx context.Context, boothID, requestingUserID uint) (*BoothStats, error) {
	booth, err := s.repo.FindByID(ctx, boothID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	if booth.OwnerUserID != requestingUserID {
		return nil, ErrBoothForbidden
	}

	submissions, err := s.submissionRepo.FindAllByBoothID(ctx, boothID)
	if err != nil {
		return nil, err
	}
	mediaCounts := moderation.Count(submissions, moderation.ViewMedia)
	bookCounts := moderation.Count(submissions, moderation.ViewGuestbook)
	pending := 0
	for _, sub := range submissions {
		if !sub.IsApproved {
			pending++
		}
	}
	return &BoothStats{
		TotalPhotos:      mediaCounts.Photos,
		TotalVideos:      mediaCounts.Videos,
		TotalMessages:    bookCounts.All,
		PendingApprovals: pending,
	}, nil
}

// GetAllBoothsPaginated tüm booth'ları sayfalayarak getirir (Dashboard).
func (s *BoothService) GetAllBoothsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	booths, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: booths,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetBoothCount toplam booth sayısını döndürür (Dashboard).
func (s *BoothService) GetBoothCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

var _ IBoothService = (*BoothService)(nil)
