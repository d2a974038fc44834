// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalServer  = errors.New("internal server error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("not logged in") // セッションが無い、または期限切れ
	ErrConflict        = errors.New("resource conflict")
	ErrTransport       = errors.New("transport failure") // fetch 相当の失敗 (接続不可・タイムアウト)
	ErrQueueEmpty      = errors.New("review queue is empty")
)

// AppError は sentinel エラーにユーザー向けメッセージを付けたものです。
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse はバックエンドが返すエラーボディです。error フィールドは任意。
type APIErrorResponse struct {
	Error string `json:"error,omitempty"`
}
