// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"recall_keep/internal/model"

	"github.com/go-playground/validator/v10"
)

// maxErrorBodyBytes はエラーボディとして読み込む上限
const maxErrorBodyBytes = 4096

// HandleError はエラーを解釈し、{"error": "..."} 形式で返します (devserver 用)。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	message := "internal server error"
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else {
		logger.Error("Unhandled error", slog.Any("error", err))
	}

	RespondWithJSON(w, statusCode, model.APIErrorResponse{Error: message}, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MapStatusCodeToError は MapErrorToStatusCode の逆方向。クライアント側で使います。
func MapStatusCodeToError(statusCode int) error {
	switch {
	case statusCode == http.StatusNotFound:
		return model.ErrNotFound
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		return model.ErrInvalidInput
	case statusCode == http.StatusConflict:
		return model.ErrConflict
	case statusCode == http.StatusUnauthorized:
		return model.ErrUnauthenticated
	case statusCode == http.StatusForbidden:
		return model.ErrForbidden
	default:
		return model.ErrInternalServer
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// IsSuccess は 2xx かどうか
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// ErrorFromResponse は非2xxレスポンスを AppError に変換します。
// ボディの error 文字列があればそれをメッセージに使います。
func ErrorFromResponse(resp *http.Response) error {
	sentinel := MapStatusCodeToError(resp.StatusCode)
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var errResp model.APIErrorResponse
	if len(body) > 0 && json.Unmarshal(body, &errResp) == nil && strings.TrimSpace(errResp.Error) != "" {
		message = errResp.Error
	}

	return model.NewAppError(http.StatusText(resp.StatusCode), message, "", sentinel)
}

// DecodeJSONResponse は2xxならボディを dst にデコードし、そうでなければエラーを返します。
// dst が nil の場合はボディを読み捨てます。
func DecodeJSONResponse(resp *http.Response, dst interface{}) error {
	defer resp.Body.Close()

	if !IsSuccess(resp.StatusCode) {
		return ErrorFromResponse(resp)
	}
	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return model.NewAppError("INVALID_RESPONSE", "レスポンスの形式が正しくありません。", "", fmt.Errorf("%w: %v", model.ErrInternalServer, err))
	}
	return nil
}

// NewValidationError は validator のエラーを AppError に変換します。最初のエラーを代表にします。
func NewValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return model.NewAppError("VALIDATION_ERROR", err.Error(), "", model.ErrInvalidInput)
	}
	firstErr := validationErrors[0]
	return model.NewAppError(
		"VALIDATION_ERROR",
		firstErr.Translate(Trans),
		firstErr.Field(),
		model.ErrInvalidInput,
	)
}

// ValidateFields は fields に挙げたフィールドだけを検証します。
func ValidateFields(v interface{}, fields ...string) error {
	if err := Validator.StructPartial(v, fields...); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// ValidateStruct は Validator.Struct の結果を AppError にして返します。
func ValidateStruct(v interface{}) error {
	if err := Validator.Struct(v); err != nil {
		return NewValidationError(err)
	}
	return nil
}
