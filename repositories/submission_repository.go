package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"lovelens.link/configs"
	"lovelens.link/configs/configslog"
	"lovelens.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Booth başına gönderim listesi cache'i. Moderasyon ekranları aynı
// listeyi filtre/arama değiştikçe tekrar tekrar okur; her mutasyon
// ilgili booth'un girdisini düşürür (read-your-writes).
var (
	listCacheMu sync.RWMutex
	listCache   = make(map[uint][]models.Submission)
)

// invalidateListCache booth'un cache girdisini düşürür.
func invalidateListCache(boothID uint) {
	listCacheMu.Lock()
	delete(listCache, boothID)
	listCacheMu.Unlock()
}

// ISubmissionRepository gönderim veritabanı işlemleri için arayüz.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id uint) (*models.Submission, error)
	FindAllByBoothID(ctx context.Context, boothID uint) ([]models.Submission, error)
	FindRecentApproved(ctx context.Context, boothID uint, limit int) ([]models.Submission, error)
	Update(ctx context.Context, submission *models.Submission) error
	Delete(ctx context.Context, submission *models.Submission, deletedByUserID uint) error
	CountAll(ctx context.Context) (int64, error)
}

// SubmissionRepository ISubmissionRepository arayüzünü uygular.
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository yeni bir SubmissionRepository örneği oluşturur.
func NewSubmissionRepository() ISubmissionRepository {
	return &SubmissionRepository{db: configs.GetDB()}
}

// NewSubmissionRepositoryTx transaction'a bağlı repository üretir.
func NewSubmissionRepositoryTx(tx *gorm.DB) ISubmissionRepository {
	return &SubmissionRepository{db: tx}
}

func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir gönderim kaydı oluşturur ve booth cache'ini düşürür.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission == nil || submission.BoothID == 0 {
		return errors.New("geçersiz booth bilgisi olan gönderim oluşturulamaz")
	}
	if err := r.getDB(ctx).Create(submission).Error; err != nil {
		return err
	}
	invalidateListCache(submission.BoothID)
	return nil
}

// FindByID belirli bir ID'ye sahip gönderimi bulur.
func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*models.Submission, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Submission ID")
	}
	var submission models.Submission
	err := r.getDB(ctx).First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SubmissionRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &submission, nil
}

// FindAllByBoothID booth'un tüm gönderimlerini en yeniden eskiye döndürür.
// Cache'te varsa DB'ye gitmez; mutasyonlar cache'i düşürdüğü için
// okumalar her zaman yazmaları görür.
func (r *SubmissionRepository) FindAllByBoothID(ctx context.Context, boothID uint) ([]models.Submission, error) {
	if boothID == 0 {
		return nil, errors.New("geçersiz Booth ID")
	}

	listCacheMu.RLock()
	cached, ok := listCache[boothID]
	listCacheMu.RUnlock()
	if ok {
		out := make([]models.Submission, len(cached))
		copy(out, cached)
		return out, nil
	}

	var submissions []models.Submission
	err := r.getDB(ctx).
		Where("booth_id = ?", boothID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindAllByBoothID: DB error", zap.Uint("booth_id", boothID), zap.Error(err))
		return nil, err
	}

	listCacheMu.Lock()
	listCache[boothID] = submissions
	listCacheMu.Unlock()

	out := make([]models.Submission, len(submissions))
	copy(out, submissions)
	return out, nil
}

// FindRecentApproved panel ana sayfası için son onaylı gönderimleri döndürür.
func (r *SubmissionRepository) FindRecentApproved(ctx context.Context, boothID uint, limit int) ([]models.Submission, error) {
	if boothID == 0 {
		return nil, errors.New("geçersiz Booth ID")
	}
	if limit <= 0 {
		limit = 5
	}
	var submissions []models.Submission
	err := r.getDB(ctx).
		Where("booth_id = ? AND is_approved = ?", boothID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		configslog.Log.Error("SubmissionRepository.FindRecentApproved: DB error", zap.Uint("booth_id", boothID), zap.Error(err))
		return nil, err
	}
	return submissions, nil
}

// Update gönderimi kaydeder ve booth cache'ini düşürür.
func (r *SubmissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	if submission == nil || submission.ID == 0 {
		return errors.New("güncellenecek gönderim geçerli değil")
	}
	if err := r.getDB(ctx).Save(submission).Error; err != nil {
		return err
	}
	invalidateListCache(submission.BoothID)
	return nil
}

// Delete gönderimi siler (soft delete) ve booth cache'ini düşürür.
// DeletedBy alanı işlemi yapan kullanıcıyla doldurulur.
func (r *SubmissionRepository) Delete(ctx context.Context, submission *models.Submission, deletedByUserID uint) error {
	if submission == nil || submission.ID == 0 {
		return errors.New("silinecek gönderim geçerli değil")
	}
	db := r.getDB(ctx)

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(&models.Submission{}).
			Where("id = ? AND deleted_at IS NULL", submission.ID).
			Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("SubmissionRepository.Delete: Update sırasında hata", zap.Uint("id", submission.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	invalidateListCache(submission.BoothID)
	return nil
}

// CountAll toplam gönderim sayısını döndürür (Dashboard için).
func (r *SubmissionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Submission{}).Count(&count).Error
	return count, err
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
