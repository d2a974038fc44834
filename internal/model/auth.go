package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session はローカルに保存するベアラートークン
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccessToken string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (Session) TableName() string {
	return "sessions"
}

// LoginRequest は login コマンドの入力
type LoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// JWTCustomClaims は devserver が発行するトークンのクレーム
type JWTCustomClaims struct {
	jwt.RegisteredClaims
}
