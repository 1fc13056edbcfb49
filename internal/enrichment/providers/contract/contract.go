// Package contract holds a reusable test suite every provider adapter must pass.
// It checks that advertised capabilities are implemented and that HTTP failures
// land in the shared error taxonomy.
package contract

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	"enricher/pkg/testutil"
)

// Sample inputs handed to each capability.
const (
	SampleEmail  = "ada@example.com"
	SampleDomain = "acme.io"
)

// SampleQuery is the finder input used by the suite.
var SampleQuery = providers.EmailQuery{FirstName: "Ada", LastName: "Lovelace", Domain: SampleDomain}

// Suite runs the adapter contract against a stub server.
type Suite struct {
	ProviderID string
	// New builds the adapter pointed at baseURL.
	New func(baseURL, apiKey string) providers.Provider
	// Bodies holds a representative 200 response per advertised capability.
	Bodies map[providers.Capability]string
	// EmptyBodies overrides the 200 response that carries no usable data.
	// Capabilities without an entry get "{}".
	EmptyBodies map[providers.Capability]string
	// ProfileURL is a profile the adapter accepts; required with enrichProfile.
	ProfileURL string
}

func (s *Suite) Run(t *testing.T) {
	t.Helper()
	sample := s.New("http://unused.invalid", "key")

	t.Run("capabilities are declared and implemented", func(t *testing.T) {
		caps := sample.Capabilities()
		assert.Equal(t, s.ProviderID, sample.ID())
		assert.NotEmpty(t, caps.Protocol, "protocol not set")
		assert.NotEmpty(t, caps.Version, "version not set")
		assert.NotEmpty(t, caps.Inputs, "no inputs declared")
		require.NotEmpty(t, caps.Supported, "no capabilities declared")
		require.NoError(t, providers.NewRegistry().Register(sample))
	})

	for _, capability := range sample.Capabilities().Supported {
		t.Run(string(capability), func(t *testing.T) {
			s.runCapability(t, capability)
		})
	}
}

func (s *Suite) runCapability(t *testing.T, capability providers.Capability) {
	t.Run("success yields a non-empty partial", func(t *testing.T) {
		body, ok := s.Bodies[capability]
		require.True(t, ok, "no sample body for %s", capability)
		stub := testutil.NewProviderStub(t, http.StatusOK, body)

		person, company, err := s.call(s.New(stub.URL(), "key"), capability)
		require.NoError(t, err)
		if capability == providers.CapabilityEnrichCompany {
			assert.False(t, providers.EmptyCompany(company))
		} else {
			assert.False(t, providers.EmptyPerson(person))
		}
		assert.Equal(t, 1, stub.Calls(), "exactly one outbound call")
	})

	t.Run("2xx without usable data is not a match", func(t *testing.T) {
		body, ok := s.EmptyBodies[capability]
		if !ok {
			body = `{}`
		}
		stub := testutil.NewProviderStub(t, http.StatusOK, body)

		person, company, err := s.call(s.New(stub.URL(), "key"), capability)
		require.Error(t, err, "an empty payload must not count as data")
		assert.Nil(t, person)
		assert.Nil(t, company)
		assert.Contains(t,
			[]providers.ErrorCategory{providers.ErrorNotFound, providers.ErrorBadData},
			providers.GetCategory(err))
	})

	t.Run("missing api key short-circuits", func(t *testing.T) {
		stub := testutil.NewProviderStub(t, http.StatusOK, s.Bodies[capability])

		_, _, err := s.call(s.New(stub.URL(), ""), capability)
		assert.Equal(t, providers.ErrorMisconfigured, providers.GetCategory(err))
		assert.Zero(t, stub.Calls(), "no network I/O without credentials")
	})

	statusCases := []struct {
		status   int
		category providers.ErrorCategory
	}{
		{http.StatusUnauthorized, providers.ErrorAuthentication},
		{http.StatusForbidden, providers.ErrorAuthentication},
		{http.StatusNotFound, providers.ErrorNotFound},
		{http.StatusTooManyRequests, providers.ErrorRateLimited},
		{http.StatusInternalServerError, providers.ErrorProviderOutage},
		{http.StatusBadGateway, providers.ErrorProviderOutage},
	}
	for _, tc := range statusCases {
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			stub := testutil.NewProviderStub(t, tc.status, `{"error":"nope"}`)

			_, _, err := s.call(s.New(stub.URL(), "key"), capability)
			require.Error(t, err)
			assert.Equal(t, tc.category, providers.GetCategory(err))
		})
	}

	t.Run("malformed body is bad data", func(t *testing.T) {
		stub := testutil.NewProviderStub(t, http.StatusOK, `{"truncated":`)

		_, _, err := s.call(s.New(stub.URL(), "key"), capability)
		assert.Equal(t, providers.ErrorBadData, providers.GetCategory(err))
	})

	t.Run("errors never leak the api key", func(t *testing.T) {
		stub := testutil.NewProviderStub(t, http.StatusInternalServerError, `{"echo":"super-secret-key"}`)

		_, _, err := s.call(s.New(stub.URL(), "super-secret-key"), capability)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "super-secret-key")
	})
}

func (s *Suite) call(p providers.Provider, capability providers.Capability) (*models.Person, *models.Company, error) {
	ctx := context.Background()
	switch capability {
	case providers.CapabilityEnrichPerson:
		person, err := p.(providers.PersonEnricher).EnrichPerson(ctx, SampleEmail)
		return person, nil, err
	case providers.CapabilityVerifyEmail:
		person, err := p.(providers.EmailVerifier).VerifyEmail(ctx, SampleEmail)
		return person, nil, err
	case providers.CapabilityFindEmail:
		person, err := p.(providers.EmailFinder).FindEmail(ctx, SampleQuery)
		return person, nil, err
	case providers.CapabilityEnrichProfile:
		pe := p.(providers.ProfileEnricher)
		if !pe.AcceptsProfile(s.ProfileURL) {
			return nil, nil, fmt.Errorf("adapter rejects sample profile %q", s.ProfileURL)
		}
		person, err := pe.EnrichProfile(ctx, s.ProfileURL)
		return person, nil, err
	case providers.CapabilityEnrichCompany:
		company, err := p.(providers.CompanyEnricher).EnrichCompany(ctx, SampleDomain)
		return nil, company, err
	}
	return nil, nil, fmt.Errorf("unknown capability %s", capability)
}
