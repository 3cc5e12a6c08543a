package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MediaKind bir gönderiye eklenen medyanın türünü tanımlar.
type MediaKind string

const (
	MediaKindPhoto MediaKind = "photo"
	MediaKindVideo MediaKind = "video"
)

// Submission bir misafir katkısıdır: mesaj ve/veya tek bir medya dosyası.
// Çok dosyalı bir gönderimde her dosya için ayrı kayıt açılır, mesaj
// metni kayıtlar arasında paylaşılır.
type Submission struct {
	BaseModel
	BoothID    uint      `gorm:"not null;index"` // booths.id FK
	Booth      Booth     `gorm:"foreignKey:BoothID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GuestName  string    `gorm:"type:varchar(150)"` // Boşsa "Anonymous" gösterilir
	Message    string    `gorm:"type:text"`
	MediaURL   string    `gorm:"type:varchar(500)"`
	MediaKind  MediaKind `gorm:"type:varchar(10)"`
	IsApproved bool      `gorm:"default:false;index"` // Pending sayıları için index
}

// HasMedia gönderinin bir medya referansı taşıyıp taşımadığını söyler.
func (s *Submission) HasMedia() bool {
	return s.MediaURL != ""
}

// HasMessage mesajın boşluk dışında içerik taşıyıp taşımadığını söyler.
// Guestbook görünümleri sadece mesajlı kayıtları listeler.
func (s *Submission) HasMessage() bool {
	return strings.TrimSpace(s.Message) != ""
}

// BeforeSave medya değişmezini korur: referans yoksa tür de olamaz,
// referans varsa tür photo veya video olmalıdır.
func (s *Submission) BeforeSave(tx *gorm.DB) error {
	if s.MediaURL == "" {
		s.MediaKind = ""
		return nil
	}
	if s.MediaKind != MediaKindPhoto && s.MediaKind != MediaKindVideo {
		return fmt.Errorf("geçersiz medya türü: %q", s.MediaKind)
	}
	return nil
}
