package service

import (
	"io"
	"log/slog"
	"time"

	"recall_keep/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(maxRetries int) *config.Config {
	cfg := config.Default()
	cfg.API.Timeout = time.Second
	cfg.Review.MaxRetries = maxRetries
	cfg.Review.RetryBackoff = time.Millisecond
	return cfg
}
