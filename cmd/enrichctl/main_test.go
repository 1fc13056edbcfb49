package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enricher/internal/enrichment/models"
	"enricher/internal/platform/config"
	"enricher/pkg/testutil"
)

// isolate clears every variable that could register a real provider.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENRICH_CONFIG_FILE", "")
	for _, name := range config.KnownProviders {
		t.Setenv(strings.ToUpper(name)+"_API_KEY", "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out, io.Discard).Run(append([]string{"enrichctl"}, args...))
	return out.String(), err
}

func TestPersonCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "person", "--first-name", "Ada", "--last-name", "Lovelace", "--email", "ada@example.com")
	require.NoError(t, err)

	var record models.PersonRecord
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Ada Lovelace", record.FullName)
	assert.Equal(t, []string{models.SourceMockEnhanced}, record.DataSources)
}

func TestPersonCommandRejectsEmptyRequest(t *testing.T) {
	isolate(t)

	_, err := run(t, "person")
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestCompanyCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "--pretty", "company", "--domain", "stripe.com")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"name\": \"Stripe\"")
}

func TestProvidersCommand(t *testing.T) {
	isolate(t)
	t.Setenv("HUNTER_API_KEY", "hk")

	out, err := run(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, `"id":"hunter"`)
	assert.Contains(t, out, `"monthly_limit":50`)
}

func TestProvidersCommandWithHealth(t *testing.T) {
	isolate(t)
	stub := testutil.NewProviderStub(t, http.StatusOK, `{"rate": {"limit": 5000, "remaining": 4999, "reset": 1767225600}}`)
	t.Setenv("GITHUB_API_KEY", "gh")
	t.Setenv("GITHUB_BASE_URL", stub.URL())

	out, err := run(t, "providers")
	require.NoError(t, err)
	assert.NotContains(t, out, `"health"`)
	assert.Zero(t, stub.Calls())

	out, err = run(t, "providers", "--health")
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `"remaining":4999`)
	assert.Equal(t, 1, stub.Calls())
}

func TestStrategyFlagIsValidated(t *testing.T) {
	isolate(t)

	_, err := run(t, "--strategy", "random", "providers")
	assert.Error(t, err)
}
