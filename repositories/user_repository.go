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

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	CountAll(ctx context.Context) (int64, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base *BaseRepository[models.User]
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	db := configs.GetDB()
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "is_active"})
	return &UserRepository{db: db, base: base}
}

// NewUserRepositoryTx transaction'a bağlı repository üretir.
func NewUserRepositoryTx(tx *gorm.DB) IUserRepository {
	return &UserRepository{db: tx, base: NewBaseRepository[models.User](tx)}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("oluşturulacak kullanıcı nil olamaz")
	}
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz User ID")
	}
	var user models.User
	err := r.getDB(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("aranacak e-posta boş olamaz")
	}
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB error", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	return r.base.FindAllPaginated(ctx, params)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("güncellenecek kullanıcı geçerli değil")
	}
	return r.getDB(ctx).Save(user).Error
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IUserRepository = (*UserRepository)(nil)
