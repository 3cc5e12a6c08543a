package migrations

import (
	"lovelens.link/configs/configslog"
	"lovelens.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateSubmissionsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating submissions table...")
	err := db.AutoMigrate(&models.Submission{})
	if err != nil {
		configslog.Log.Error("Failed to migrate submissions table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Submissions table migrated successfully")
	return nil
}
