package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	validToken, err := IssueToken(secret, "user-1", time.Hour)
	require.NoError(t, err)
	expiredToken, err := IssueToken(secret, "user-1", -time.Hour)
	require.NoError(t, err)
	otherKeyToken, err := IssueToken("other-secret", "user-1", time.Hour)
	require.NoError(t, err)

	var gotSubject string
	handler := JWTAuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = GetSubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "正常系: 有効なトークン", header: "Bearer " + validToken, wantStatus: http.StatusOK},
		{name: "異常系: ヘッダーなし", header: "", wantStatus: http.StatusUnauthorized},
		{name: "異常系: 形式不正", header: "Token " + validToken, wantStatus: http.StatusUnauthorized},
		{name: "異常系: 期限切れ", header: "Bearer " + expiredToken, wantStatus: http.StatusUnauthorized},
		{name: "異常系: 署名キー不一致", header: "Bearer " + otherKeyToken, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/api/recall/due", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", gotSubject)
			}
		})
	}
}
