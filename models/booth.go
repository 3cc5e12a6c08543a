package models

import (
	"crypto/rand"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BoothCodeLength public erişim kodunun uzunluğu.
// QR ve URL'lerde kullanıldığı için kısa tutulur.
const BoothCodeLength = 6

// boothCodeAlphabet karıştırılması kolay karakterler (0/O, 1/I) hariç.
const boothCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Booth bir çiftin anı defteri standıdır. Misafirler Code üzerinden
// erişir; Code oluşturma sonrası değişmez.
type Booth struct {
	BaseModel
	OwnerUserID        uint      `gorm:"uniqueIndex;not null"` // users.id FK, çift başına tek booth
	Owner              User      `gorm:"foreignKey:OwnerUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CoupleName         string    `gorm:"type:varchar(150);not null"`
	WeddingDate        time.Time `gorm:"type:date"`
	Email              string    `gorm:"type:varchar(150)"`
	Code               string    `gorm:"type:varchar(12);uniqueIndex;not null"`
	IsPublic           bool      `gorm:"default:false;index"`
	RequiresApproval   bool      `gorm:"default:true"`
	EmailNotifications bool      `gorm:"default:true"`

	// İlişkiler
	Submissions []Submission `gorm:"foreignKey:BoothID"`
}

// BeforeCreate erişim kodunu üretir ve BaseModel hook'unu çalıştırır.
// Kod çakışması uniqueIndex tarafından yakalanır; servis katmanı
// duplicate hatasında yeniden dener.
func (b *Booth) BeforeCreate(tx *gorm.DB) error {
	if b.Code == "" {
		code, err := GenerateBoothCode()
		if err != nil {
			return err
		}
		b.Code = code
	}
	return b.BaseModel.BeforeCreate(tx)
}

// GenerateBoothCode crypto/rand ile BoothCodeLength uzunluğunda kod üretir.
func GenerateBoothCode() (string, error) {
	buf := make([]byte, BoothCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("booth kodu için rastgele veri üretilemedi")
	}
	for i, v := range buf {
		buf[i] = boothCodeAlphabet[int(v)%len(boothCodeAlphabet)]
	}
	return string(buf), nil
}
