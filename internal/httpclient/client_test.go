package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwire/internal/config"
)

func TestGetSendsIdentityHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
	}))
	defer server.Close()

	c := New(config.HTTPConfig{
		UserAgent:      "Mozilla/5.0 (test)",
		AcceptLanguage: "en-US,en;q=0.9",
		TimeoutSec:     5,
	})
	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Mozilla/5.0 (test)", gotUA)
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
}

func TestGetHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(config.HTTPConfig{TimeoutSec: 5})
	_, err := c.Get(ctx, "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}
