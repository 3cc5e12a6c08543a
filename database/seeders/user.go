package seeders

import (
	"errors"
	"os"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser sistem yöneticisi hesabını oluşturur veya şifresini
// ortam değişkenindeki değere göre günceller. Bilgiler SYSTEM_USER_EMAIL
// ve SYSTEM_USER_PASSWORD ile verilir.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL veya SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmiyor.")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Şifre ve bayraklar env ile eşitlenir
		existing.Password = string(hashed)
		existing.IsSystem = true
		existing.IsActive = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.String("email", email), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi: %s (ID: %d)", email, existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Name:     "System",
		Email:    email,
		Password: string(hashed),
		IsSystem: true,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s (ID: %d)", email, user.ID)
	return nil
}
