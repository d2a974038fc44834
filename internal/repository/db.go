package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"recall_keep/internal/model"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB はセッション保存用の sqlite を開き、マイグレーションまで行います。
func NewDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithSlowThreshold(200*time.Millisecond),
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
	})
	if err != nil {
		appLogger.Error("Failed to open session database", slog.String("path", path), slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}
	// sqlite なので書き込みは1本に絞る
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Session{}); err != nil {
		appLogger.Error("Failed to migrate session database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	appLogger.Debug("Session database ready", slog.String("path", path))
	return db, nil
}
