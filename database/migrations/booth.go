package migrations

import (
	"lovelens.link/configs/configslog"
	"lovelens.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateBoothsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating booths table...")
	err := db.AutoMigrate(&models.Booth{})
	if err != nil {
		configslog.Log.Error("Failed to migrate booths table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Booths table migrated successfully")
	return nil
}
