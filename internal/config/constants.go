// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "recall_keep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultAPIBaseURL    = "http://localhost:8080"
	DefaultAPITimeout    = 10 * time.Second
	DefaultRetryBackoff  = 500 * time.Millisecond
	DefaultStatsInterval = 30 * time.Second
	DefaultSessionPath   = "recall_keep_session.db"
	DefaultLogLevel      = "info"
	DefaultLogFile       = "recall_keep.log"
	DefaultDevServerPort = ":8080"
	DefaultDevSecretKey  = "dev-secret-change-me"
)
