package repositories

import (
	"context"
	"errors"
	"strings"

	"lovelens.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository ortak CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
}

// BaseRepository IBaseRepository'nin GORM implementasyonu.
type BaseRepository[T any] struct {
	db             *gorm.DB
	allowedSortMap map[string]bool
}

// NewBaseRepository verilen DB/transaction ile generik repo oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortMap: map[string]bool{}}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları belirler.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortMap = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSortMap[c] = true
	}
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]T, int64, error) {
	var entities []T
	var totalCount int64
	var model T

	query := r.db.WithContext(ctx).Model(&model)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return entities, 0, nil
	}

	sortBy := "created_at"
	if r.allowedSortMap[params.SortBy] {
		sortBy = params.SortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.
		Order(sortBy + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&entities).Error
	return entities, totalCount, err
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var model T
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}

var _ IBaseRepository[any] = (*BaseRepository[any])(nil)
