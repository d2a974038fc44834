package repository

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"recall_keep/internal/devserver"
	"recall_keep/internal/middleware"
	"recall_keep/internal/model"

	"github.com/stretchr/testify/require"
)

const testSecret = "repository-test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", model.ErrUnauthenticated
	}
	return string(s), nil
}

// setupBackend は devserver を起動し、トークン付きのクライアントを返します。
func setupBackend(t *testing.T, fixtures devserver.Fixtures) (*devserver.Server, *httptest.Server, middleware.TokenSource) {
	t.Helper()
	srv := devserver.New(fixtures, devserver.Options{SecretKey: testSecret}, discardLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	token, err := middleware.IssueToken(testSecret, "tester", time.Hour)
	require.NoError(t, err)
	return srv, ts, staticToken(token)
}
