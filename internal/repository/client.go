package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"recall_keep/internal/middleware"
	"recall_keep/internal/model"
	"recall_keep/internal/webutil"
)

// NewHTTPClient はバックエンド呼び出し用の http.Client を組み立てます。
// base が nil なら http.DefaultTransport を使います。
func NewHTTPClient(base http.RoundTripper, tokens middleware.TokenSource, timeout time.Duration, logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: middleware.Chain(base,
			middleware.RequestID,
			middleware.BearerAuth(tokens),
			middleware.Logging(logger),
			middleware.Transport,
		),
	}
}

// restClient は各RESTリポジトリが共有するJSON呼び出しヘルパーです。
type restClient struct {
	client  *http.Client
	baseURL string
}

func newRestClient(client *http.Client, baseURL string) restClient {
	return restClient{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// doJSON は body を JSON で送り、2xx なら out にデコードします。
func (c restClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return model.NewAppError("INVALID_REQUEST", "リクエストの生成に失敗しました。", "", fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	return webutil.DecodeJSONResponse(resp, out)
}
