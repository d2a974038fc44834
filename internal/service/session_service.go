package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"recall_keep/internal/middleware"
	"recall_keep/internal/model"
	"recall_keep/internal/repository"
	"recall_keep/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService は保存済みのベアラートークンを管理します。middleware.TokenSource を実装します。
type SessionService struct {
	db     *gorm.DB
	repo   repository.SessionRepository
	logger *slog.Logger
	now    func() time.Time
}

var _ middleware.TokenSource = (*SessionService)(nil)

func NewSessionService(db *gorm.DB, repo repository.SessionRepository, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{db: db, repo: repo, logger: logger, now: time.Now}
}

// Token は保存済みトークンを返します。無い場合や期限切れの場合は model.ErrUnauthenticated。
func (s *SessionService) Token(ctx context.Context) (string, error) {
	session, err := s.repo.FindLatest(ctx, s.db)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.NewAppError("NOT_LOGGED_IN", "ログインが必要です。", "", model.ErrUnauthenticated)
		}
		return "", err
	}
	if s.expired(session.AccessToken) {
		s.logger.Info("Stored access token has expired")
		return "", model.NewAppError("TOKEN_EXPIRED", "ログインの有効期限が切れています。", "", model.ErrUnauthenticated)
	}
	return session.AccessToken, nil
}

// Save は既存のセッションを置き換えてトークンを保存します。
func (s *SessionService) Save(ctx context.Context, token string) error {
	req := model.LoginRequest{AccessToken: strings.TrimSpace(token)}
	if err := webutil.ValidateStruct(req); err != nil {
		return err
	}
	if s.expired(req.AccessToken) {
		return model.NewAppError("TOKEN_EXPIRED", "有効期限切れのトークンは保存できません。", "access_token", model.ErrInvalidInput)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteAll(ctx, tx); err != nil {
			return err
		}
		return s.repo.Save(ctx, tx, &model.Session{
			ID:          uuid.New(),
			AccessToken: req.AccessToken,
			CreatedAt:   s.now(),
		})
	})
}

// Clear は保存済みのセッションを削除します。
func (s *SessionService) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx, s.db)
}

// expired は JWT の exp が過ぎているかを見ます。署名は検証しません (検証はサーバーの責務)。
// JWT でないトークンは期限なしとして扱います。
func (s *SessionService) expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(s.now())
}
