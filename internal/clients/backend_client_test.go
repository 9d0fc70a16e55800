package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/koiexpress/shipping-gateway/pkg/errors"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

func newTestClient(handler http.HandlerFunc) (*BackendClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewBackendClient(srv.URL, 5*time.Second, logger.NewNopLogger())
	return client, srv
}

func TestOrdersSendsBearerToken(t *testing.T) {
	var gotAuth string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[{"id":1},{"id":2}]}`))
	})
	defer srv.Close()

	orders, err := client.Orders(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Len(t, orders, 2)
}

func TestDecodeEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"double wrapped", `{"data":{"data":[{"id":1}]}}`},
		{"single wrapped", `{"data":[{"id":1}]}`},
		{"bare", `[{"id":1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			orders, err := client.Orders(context.Background(), "t")
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, int64(1), orders[0].ID)
		})
	}
}

func TestRequestFailedKeepsUpstreamStatus(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	_, err := client.Orders(context.Background(), "t")
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrRequestFailed)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.StatusOf(err))
}

func TestUnreachableBackendIsNetworkError(t *testing.T) {
	client := NewBackendClient("http://127.0.0.1:1", time.Second, logger.NewNopLogger())

	_, err := client.Orders(context.Background(), "t")
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusOf(err))
}

func TestLoginOmitsAuthorizationHeader(t *testing.T) {
	var gotAuth string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"token":"jwt-here"}}`))
	})
	defer srv.Close()

	token, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
	assert.Equal(t, "jwt-here", token)
}

func TestCreateFeedbackUsesBackendFieldSpelling(t *testing.T) {
	var gotBody string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	err := client.CreateFeedback(context.Background(), "t", 5, "great service")
	require.NoError(t, err)

	assert.Contains(t, gotBody, `"desciption":"great service"`)
}
