package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enricher/pkg/testutil"
)

func TestClient_MissingKeyMakesNoCall(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{}`)
	c := NewClient("acme", Config{BaseURL: stub.URL()})

	err := c.GetJSON(context.Background(), "/x", nil, nil)

	require.Error(t, err)
	assert.Equal(t, ErrorMisconfigured, GetCategory(err))
	assert.Contains(t, err.Error(), "not configured")
	assert.Zero(t, stub.Calls())
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	stub := testutil.NewProviderStubFunc(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	c := NewClient("slow", Config{APIKey: "k", BaseURL: stub.URL(), Timeout: 50 * time.Millisecond})

	start := time.Now()
	err := c.GetJSON(context.Background(), "/slow", nil, nil)

	assert.Equal(t, ErrorTimeout, GetCategory(err))
	assert.True(t, IsTransient(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_CallerCancellationIsTimeout(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{}`)
	c := NewClient("acme", Config{APIKey: "k", BaseURL: stub.URL(), Timeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.GetJSON(ctx, "/x", nil, nil)
	assert.Equal(t, ErrorTimeout, GetCategory(err))
}

func TestClient_TransportErrorIsOutage(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{}`)
	base := stub.URL()
	stub.Server.Close()

	c := NewClient("gone", Config{APIKey: "secret-key", BaseURL: base, Timeout: time.Second},
		WithQueryKeyAuth("api_key"))
	err := c.GetJSON(context.Background(), "/x", nil, nil)

	require.Error(t, err)
	assert.Equal(t, ErrorProviderOutage, GetCategory(err))
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestClient_QueryAuthMergesParameters(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{"ok": true}`)
	c := NewClient("q", Config{APIKey: "k1", BaseURL: stub.URL() + "/"}, WithQueryKeyAuth("api_key"))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/v2/find", url.Values{"email": {"a@b.io"}}, &out))

	assert.True(t, out.OK)
	req := stub.LastRequest()
	assert.Equal(t, "/v2/find", req.URL.Path)
	assert.Equal(t, "a@b.io", req.URL.Query().Get("email"))
	assert.Equal(t, "k1", req.URL.Query().Get("api_key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestClient_PostJSONSetsHeaders(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusCreated, `{}`)
	c := NewClient("p", Config{APIKey: "k2", BaseURL: stub.URL()}, WithHeader("User-Agent", "enricher/1.0"))

	require.NoError(t, c.PostJSON(context.Background(), "/enrich", map[string]string{"a": "b"}, nil))

	req := stub.LastRequest()
	assert.Equal(t, "Bearer k2", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "enricher/1.0", req.Header.Get("User-Agent"))
	assert.JSONEq(t, `{"a":"b"}`, string(stub.LastBody()))
}

func TestClient_RateLimiterSpacesCalls(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{}`)
	c := NewClient("limited", Config{APIKey: "k", BaseURL: stub.URL(), Timeout: time.Second, RateLimitRPS: 20})

	start := time.Now()
	for range 3 {
		require.NoError(t, c.GetJSON(context.Background(), "/x", nil, nil))
	}
	// burst of 20 is allowed, so three calls should not wait
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 3, stub.Calls())
}

func TestClient_RateLimiterRespectsDeadline(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusOK, `{}`)
	c := NewClient("limited", Config{APIKey: "k", BaseURL: stub.URL(), Timeout: 20 * time.Millisecond, RateLimitRPS: 0.1})

	require.NoError(t, c.GetJSON(context.Background(), "/x", nil, nil))
	err := c.GetJSON(context.Background(), "/x", nil, nil)

	assert.Equal(t, ErrorTimeout, GetCategory(err))
	assert.Equal(t, 1, stub.Calls())
}

func TestClient_OutageMessageCarriesRedactedSnippet(t *testing.T) {
	stub := testutil.NewProviderStub(t, http.StatusServiceUnavailable, `{"detail": "down", "auth": "Bearer abc.def"}`)
	c := NewClient("p", Config{APIKey: "k", BaseURL: stub.URL()})

	err := c.GetJSON(context.Background(), "/x", nil, nil)

	assert.Equal(t, ErrorProviderOutage, GetCategory(err))
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "down")
	assert.NotContains(t, err.Error(), "abc.def")
}

func TestClient_SnippetKeepsRunesWhole(t *testing.T) {
	// 199 ASCII bytes put a two-byte rune across the truncation point.
	body := strings.Repeat("a", maxSnippetBytes-1) + strings.Repeat("é", 10)
	stub := testutil.NewProviderStub(t, http.StatusBadGateway, body)
	c := NewClient("p", Config{APIKey: "k", BaseURL: stub.URL()})

	err := c.GetJSON(context.Background(), "/x", nil, nil)

	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()), "snippet split a rune: %q", err.Error())
	assert.Contains(t, err.Error(), strings.Repeat("a", maxSnippetBytes-1)+"...")
}
