package models

import (
	"time"

	"gorm.io/gorm"
)

// ctxKey context value çakışmalarını önlemek için paket-özel tip.
type ctxKey string

// CtxUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// hook'lara taşımak için kullanılır.
const CtxUserIDKey ctxKey = "user_id"

// BaseModel tüm tablolarda ortak olan ID, zaman damgaları ve
// audit (kim oluşturdu/güncelledi/sildi) alanlarını taşır.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"type:timestamptz"`
	UpdatedAt time.Time      `gorm:"type:timestamptz"`
	DeletedAt gorm.DeletedAt `gorm:"index;type:timestamptz"`
	CreatedBy *uint
	UpdatedBy *uint
	DeletedBy *uint
}

// userIDFromContext context'teki kullanıcı ID'sini döndürür (varsa).
func userIDFromContext(tx *gorm.DB) *uint {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return nil
	}
	if id, ok := tx.Statement.Context.Value(CtxUserIDKey).(uint); ok && id != 0 {
		return &id
	}
	return nil
}

// BeforeCreate CreatedBy alanını context'ten doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedBy == nil {
		m.CreatedBy = userIDFromContext(tx)
	}
	return nil
}

// BeforeUpdate UpdatedBy alanını context'ten doldurur.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id := userIDFromContext(tx); id != nil {
		m.UpdatedBy = id
	}
	return nil
}
