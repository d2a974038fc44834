package repository

import (
	"context"
	"errors"
	"fmt"

	"recall_keep/internal/middleware"
	"recall_keep/internal/model"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Save(ctx context.Context, db *gorm.DB, session *model.Session) error
	FindLatest(ctx context.Context, db *gorm.DB) (*model.Session, error)
	DeleteAll(ctx context.Context, db *gorm.DB) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Save(ctx context.Context, db *gorm.DB, session *model.Session) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Create(session).Error; err != nil {
		logger.Error("Failed to save session", "error", err)
		return fmt.Errorf("gormSessionRepository.Save: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) FindLatest(ctx context.Context, db *gorm.DB) (*model.Session, error) {
	logger := middleware.GetLogger(ctx)
	var session model.Session
	if err := db.WithContext(ctx).Order("created_at DESC").First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Failed to find session", "error", err)
		return nil, fmt.Errorf("gormSessionRepository.FindLatest: %w", err)
	}
	return &session, nil
}

func (r *gormSessionRepository) DeleteAll(ctx context.Context, db *gorm.DB) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Where("1 = 1").Delete(&model.Session{}).Error; err != nil {
		logger.Error("Failed to delete sessions", "error", err)
		return fmt.Errorf("gormSessionRepository.DeleteAll: %w", err)
	}
	return nil
}
