package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

// BackendClient is a client for the remote koi shipping REST API. Every
// authenticated call carries the session's bearer token. The client never
// retries; the only deadline is the configured HTTP timeout.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewBackendClient creates a new BackendClient instance
func NewBackendClient(baseURL string, timeout time.Duration, logger logger.Logger) *BackendClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &BackendClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// do issues one request against the backend and decodes the response into out.
// Transport failures map to ErrNetwork, non-2xx responses to ErrRequestFailed.
func (c *BackendClient) do(ctx context.Context, method, path, token string, payload, out interface{}) error {
	url := c.baseURL + path

	var body io.Reader

	if payload != nil {
		reqBody, err := json.Marshal(payload)

		if err != nil {
			return errors.NewInternalError(fmt.Sprintf("failed to marshal request: %v", err))
		}
		body = bytes.NewBuffer(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)

	if err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to create request: %v", err))
	}

	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return errors.NewNetworkError(fmt.Sprintf("failed to reach backend: %v", err)).
			WithContext("path", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)

	if err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to read response body: %v", err))
	}

	if resp.StatusCode >= 300 {
		c.logger.Warn("Backend request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode)

		return errors.NewRequestFailedError(
			resp.StatusCode,
			fmt.Sprintf("backend returned status %d", resp.StatusCode),
		).WithContext("path", path)
	}

	if out == nil {
		return nil
	}

	if err := decodeEnvelope(respBody, out); err != nil {
		return errors.NewInternalError(fmt.Sprintf("failed to parse response: %v", err)).
			WithContext("path", path)
	}

	return nil
}

// decodeEnvelope unwraps a backend response body into out. Endpoints answer
// either {data:{data:...}}, {data:...}, or a bare record; all three are
// tolerated.
func decodeEnvelope(body []byte, out interface{}) error {
	var outer struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(body, &outer); err != nil || !hasValue(outer.Data) {
		return json.Unmarshal(body, out)
	}

	var inner struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(outer.Data, &inner); err == nil && hasValue(inner.Data) {
		return json.Unmarshal(inner.Data, out)
	}

	return json.Unmarshal(outer.Data, out)
}

func hasValue(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
