package database

import (
	"fmt"
	"time"

	"project-tracker/internal/auth"
	"project-tracker/internal/config"
	"project-tracker/internal/logutils"
	"project-tracker/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// Open connects to PostgreSQL, retrying while the server comes up, and
// applies the pool settings from cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: NewLogger(), TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= connectAttempts; i++ {
		logutils.Log.Infof("connecting to database (attempt %d/%d)", i, connectAttempts)

		db, err = gorm.Open(postgres.Open(cfg.DBDSN), gormCfg)
		if err == nil {
			break
		}
		logutils.Log.WithError(err).Warn("database connection failed")
		time.Sleep(connectBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", connectAttempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logutils.Log.Info("database connected")
	return db, nil
}

// NewLogger routes gorm's logging through logrus.
func NewLogger() logger.Interface {
	return logger.New(logutils.Log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// SeedAdmin creates the configured administrator when no admin exists yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	logutils.Log.WithField("email", email).Info("created default admin user")
	return nil
}
