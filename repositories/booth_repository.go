package repositories

import (
	"context"
	"errors"

	"lovelens.link/configs"
	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IBoothRepository booth veritabanı işlemleri için arayüz.
type IBoothRepository interface {
	Create(ctx context.Context, booth *models.Booth) error
	FindByID(ctx context.Context, id uint) (*models.Booth, error)
	FindByOwnerUserID(ctx context.Context, ownerUserID uint) (*models.Booth, error)
	FindByCode(ctx context.Context, code string) (*models.Booth, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Booth, int64, error)
	Update(ctx context.Context, booth *models.Booth) error
	CountAll(ctx context.Context) (int64, error)
}

// BoothRepository IBoothRepository arayüzünü uygular.
type BoothRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.Booth]
}

// NewBoothRepository yeni bir BoothRepository örneği oluşturur.
func NewBoothRepository() IBoothRepository {
	db := configs.GetDB()
	base := NewBaseRepository[models.Booth](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "couple_name", "wedding_date", "is_public"})
	return &BoothRepository{db: db, base: base}
}

// NewBoothRepositoryTx transaction'a bağlı repository üretir.
func NewBoothRepositoryTx(tx *gorm.DB) IBoothRepository {
	base := NewBaseRepository[models.Booth](tx)
	base.SetAllowedSortColumns([]string{"id", "created_at"})
	return &BoothRepository{db: tx, base: base}
}

func (r *BoothRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir booth kaydı oluşturur. Erişim kodu modelin
// BeforeCreate hook'unda üretilir.
func (r *BoothRepository) Create(ctx context.Context, booth *models.Booth) error {
	if booth == nil || booth.OwnerUserID == 0 {
		return errors.New("geçersiz sahip bilgisi olan booth oluşturulamaz")
	}
	return r.getDB(ctx).Create(booth).Error
}

// FindByID belirli bir ID'ye sahip booth'u bulur.
func (r *BoothRepository) FindByID(ctx context.Context, id uint) (*models.Booth, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Booth ID")
	}
	var booth models.Booth
	err := r.getDB(ctx).First(&booth, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BoothRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &booth, nil
}

// FindByOwnerUserID sahibinin booth'unu bulur (çift başına tek booth).
func (r *BoothRepository) FindByOwnerUserID(ctx context.Context, ownerUserID uint) (*models.Booth, error) {
	if ownerUserID == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var booth models.Booth
	err := r.getDB(ctx).Where("owner_user_id = ?", ownerUserID).First(&booth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BoothRepository.FindByOwnerUserID: DB error", zap.Uint("owner_user_id", ownerUserID), zap.Error(err))
		return nil, err
	}
	return &booth, nil
}

// FindByCode public erişim kodu ile booth'u bulur.
func (r *BoothRepository) FindByCode(ctx context.Context, code string) (*models.Booth, error) {
	if code == "" {
		return nil, errors.New("aranacak booth kodu boş olamaz")
	}
	var booth models.Booth
	err := r.getDB(ctx).Where("code = ?", code).First(&booth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("BoothRepository.FindByCode: DB error", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &booth, nil
}

// FindAllPaginated tüm booth'ları sayfalayarak bulur (Dashboard için).
func (r *BoothRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Booth, int64, error) {
	booths, totalCount, err := r.base.FindAllPaginated(ctx, params)
	if err != nil {
		configslog.Log.Error("BoothRepository.FindAllPaginated: DB error", zap.Error(err))
	}
	return booths, totalCount, err
}

// Update booth ayarlarını kaydeder. Erişim kodu asla değişmez; çağıran
// katman kodu mevcut kayıttan taşımakla yükümlüdür.
func (r *BoothRepository) Update(ctx context.Context, booth *models.Booth) error {
	if booth == nil || booth.ID == 0 {
		return errors.New("güncellenecek booth geçerli değil")
	}
	return r.getDB(ctx).Save(booth).Error
}

// CountAll toplam booth sayısını döndürür.
func (r *BoothRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IBoothRepository = (*BoothRepository)(nil)
