package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"recall_keep/internal/model"

	"github.com/google/uuid"
)

// RequestIDHeader はクライアントが付与するリクエストIDヘッダー
const RequestIDHeader = "X-Request-ID"

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// TokenSource はベアラートークンの取得元です。セッションストアが実装します。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RoundTripperFunc は関数を http.RoundTripper として扱うアダプタです。
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain は next を内側にして transports を外側から順に巻きます。
func Chain(next http.RoundTripper, transports ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	for i := len(transports) - 1; i >= 0; i-- {
		next = transports[i](next)
	}
	return next
}

// RequestID は X-Request-ID が無いリクエストに UUID を付与します。
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, uuid.NewString())
		return next.RoundTrip(r)
	})
}

// BearerAuth は TokenSource から取得したトークンを Authorization ヘッダーに付けます。
// トークンが取得できない場合はリクエストを送らずにエラーを返します。
func BearerAuth(source TokenSource) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token, err := source.Token(r.Context())
			if err != nil {
				return nil, err
			}
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// Logging は送信したリクエストと結果を構造化ログに出力します。
// ヘッダーの詳細はデバッグレベルのときだけ出します。
func Logging(logger *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()
			reqLogger := logger.With(
				slog.String("request_id", r.Header.Get(RequestIDHeader)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			start := time.Now()
			resp, err := next.RoundTrip(r)
			latency := time.Since(start)

			if err != nil {
				reqLogger.LogAttrs(ctx, slog.LevelWarn, "Request failed",
					slog.Any("error", err),
					slog.Duration("latency_ms", latency),
				)
				return nil, err
			}

			// レベルを選択 (5xxはError、4xxはWarn、それ以外はDebug)
			level := slog.LevelDebug
			if resp.StatusCode >= 500 {
				level = slog.LevelError
			} else if resp.StatusCode >= 400 {
				level = slog.LevelWarn
			}
			reqLogger.LogAttrs(ctx, level, "Request completed",
				slog.Int("status", resp.StatusCode),
				slog.Duration("latency_ms", latency),
			)

			if logger.Enabled(ctx, slog.LevelDebug) {
				reqLogger.Debug("Request detail",
					"request_headers", formatHeaders(r.Header),
					"response_headers", formatHeaders(resp.Header),
				)
			}
			return resp, nil
		})
	}
}

// Transport は接続失敗を model.ErrTransport でラップします。
// ただしトークン取得失敗など、送信前に決まったアプリケーションエラーはそのまま返します。
func Transport(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", model.ErrTransport, r.Method, r.URL.Path, err)
		}
		return resp, nil
	})
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		lowerKey := strings.ToLower(key)
		if sensitiveHeaders[lowerKey] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}
