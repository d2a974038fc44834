package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"recall_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfg := fmt.Sprintf("session:\n  path: %q\nlog:\n  level: debug\n  file: %q\n",
		filepath.Join(dir, "session.db"), filepath.Join(dir, "test.log"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	root, a := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", dir}, args...))

	err := root.Execute()
	require.NoError(t, a.close())
	return out.String(), err
}

func TestLoginLogout(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "login", "--token", "opaque-token")
	require.NoError(t, err)
	assert.Contains(t, out, "ログインしました")

	out, err = runCLI(t, dir, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "ログアウトしました")

	_, err = os.Stat(filepath.Join(dir, "test.log"))
	assert.NoError(t, err)
}

func TestLogin_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "異常系: 空のトークン", args: []string{"login", "--token", " "}},
		{name: "異常系: トークン指定なし", args: []string{"login"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, t.TempDir(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestReview_RequiresLogin(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "review")
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "ログインが必要です。", errorMessage(model.NewAppError("NOT_LOGGED_IN", "ログインが必要です。", "", model.ErrUnauthenticated)))
	assert.Equal(t, model.ErrTransport.Error(), errorMessage(model.ErrTransport))
}
