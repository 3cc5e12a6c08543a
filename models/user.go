package models

// User panel (çift) ve dashboard (sistem yöneticisi) kullanıcıları.
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"` // bcrypt hash
	IsSystem bool   `gorm:"default:false;index"`
	IsActive bool   `gorm:"default:true;index"`

	// İlişkiler
	Booth *Booth `gorm:"foreignKey:OwnerUserID"` // Her çiftin en fazla bir booth'u olur
}
