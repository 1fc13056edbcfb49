package orchestrator_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"enricher/internal/enrichment/metrics"
	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/orchestrator"
	"enricher/internal/enrichment/providers"
	"enricher/internal/enrichment/providers/mocks"
	"enricher/internal/enrichment/quota"
	"enricher/pkg/platform/circuit"
	"enricher/pkg/testutil"
)

// =============================================================================
// Test providers
// =============================================================================

func caps(supported ...providers.Capability) providers.Capabilities {
	return providers.Capabilities{Protocol: providers.ProtocolHTTP, Version: "test", Supported: supported}
}

type personProvider struct {
	id string
	*mocks.MockPersonEnricher
}

func (p personProvider) ID() string { return p.id }
func (p personProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityEnrichPerson)
}

type companyProvider struct {
	id string
	*mocks.MockCompanyEnricher
}

func (p companyProvider) ID() string { return p.id }
func (p companyProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityEnrichCompany)
}

type verifierProvider struct {
	id string
	*mocks.MockEmailVerifier
}

func (p verifierProvider) ID() string { return p.id }
func (p verifierProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityVerifyEmail)
}

// profileProvider resolves any LinkedIn URL with a fixed result.
type profileProvider struct {
	id     string
	result *models.Person
	calls  atomic.Int32
}

func (p *profileProvider) ID() string { return p.id }
func (p *profileProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityEnrichProfile)
}
func (p *profileProvider) AcceptsProfile(url string) bool {
	return strings.Contains(url, "linkedin.com/in/")
}
func (p *profileProvider) EnrichProfile(_ context.Context, _ string) (*models.Person, error) {
	p.calls.Add(1)
	return p.result, nil
}

// funcPersonProvider delegates EnrichPerson to fn.
type funcPersonProvider struct {
	id string
	fn func(ctx context.Context, email string) (*models.Person, error)
}

func (p funcPersonProvider) ID() string { return p.id }
func (p funcPersonProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityEnrichPerson)
}
func (p funcPersonProvider) EnrichPerson(ctx context.Context, email string) (*models.Person, error) {
	return p.fn(ctx, email)
}

// healthyProvider reports account health and counts the checks.
type healthyProvider struct {
	id     string
	checks *atomic.Int32
	health providers.Health
	err    error
}

func (p healthyProvider) ID() string { return p.id }
func (p healthyProvider) Capabilities() providers.Capabilities {
	return caps(providers.CapabilityEnrichPerson)
}
func (p healthyProvider) EnrichPerson(context.Context, string) (*models.Person, error) {
	return nil, providers.NewProviderError(providers.ErrorNotFound, p.id, "no match", nil)
}
func (p healthyProvider) Health(context.Context) (providers.Health, error) {
	p.checks.Add(1)
	return p.health, p.err
}

func outage(id string) error {
	return providers.NewProviderError(providers.ErrorProviderOutage, id, "HTTP 503", nil)
}

// =============================================================================
// Suite
// =============================================================================

type OrchestratorSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	ctx      context.Context
	registry *providers.Registry
	quota    *quota.Manager
	logs     *bytes.Buffer
	logger   *slog.Logger
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = testutil.Context()
	s.registry = providers.NewRegistry()
	s.quota = quota.New()
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewJSONHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (s *OrchestratorSuite) register(p providers.Provider, monthly int) {
	s.Require().NoError(s.registry.Register(p))
	s.Require().NoError(s.quota.Register(p.ID(), monthly))
}

func (s *OrchestratorSuite) engine(opts ...orchestrator.Option) *orchestrator.Orchestrator {
	opts = append([]orchestrator.Option{orchestrator.WithLogger(s.logger)}, opts...)
	return orchestrator.New(s.registry, s.quota, opts...)
}

// =============================================================================
// Person enrichment
// =============================================================================

func (s *OrchestratorSuite) TestEnrichPerson_SingleFieldScores17() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	mock.EXPECT().EnrichPerson(gomock.Any(), "ada@example.com").
		Return(&models.Person{Professional: &models.Professional{CurrentTitle: "Engineer"}}, nil)
	s.register(personProvider{"clearbit", mock}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	s.Equal([]string{"clearbit"}, rec.DataSources)
	s.Equal(17, rec.EnrichmentScore)
	s.False(rec.Synthetic)
	s.Empty(rec.Note)
	s.Equal("Engineer", rec.Professional.CurrentTitle)
	s.Equal(testutil.FixedNow, rec.EnrichedAt)
	s.Contains(rec.MissingFields, "email")

	state, _ := s.quota.Get(s.ctx, "clearbit")
	s.Equal(1, state.Used)
}

func (s *OrchestratorSuite) TestEnrichPerson_FirstNonNullWins() {
	first := mocks.NewMockPersonEnricher(s.ctrl)
	first.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(&models.Person{
		FullName:     "Ada Lovelace",
		Professional: &models.Professional{CurrentTitle: "Analyst"},
	}, nil)
	second := mocks.NewMockPersonEnricher(s.ctrl)
	second.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(&models.Person{
		FullName:     "A. King",
		Professional: &models.Professional{CurrentTitle: "Countess", CurrentCompany: "Engines Ltd"},
		Location:     &models.Location{City: "London"},
	}, nil)
	s.register(personProvider{"clearbit", first}, 50)
	s.register(personProvider{"surfe", second}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	s.Equal([]string{"clearbit", "surfe"}, rec.DataSources)
	s.Equal("Ada Lovelace", rec.FullName)
	s.Equal("Analyst", rec.Professional.CurrentTitle)
	s.Equal("Engines Ltd", rec.Professional.CurrentCompany)
	s.Equal("London", rec.Location.City)
}

func (s *OrchestratorSuite) TestEnrichPerson_FailureIsRecoveredAndReleased() {
	failing := mocks.NewMockPersonEnricher(s.ctrl)
	failing.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(nil, outage("clearbit"))
	working := mocks.NewMockPersonEnricher(s.ctrl)
	working.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(&models.Person{FullName: "Ada Lovelace"}, nil)
	s.register(personProvider{"clearbit", failing}, 50)
	s.register(personProvider{"surfe", working}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	s.Equal([]string{"surfe"}, rec.DataSources)
	s.Contains(rec.ProviderErrors, "clearbit")
	s.Contains(rec.ProviderErrors["clearbit"], "provider_outage")

	state, _ := s.quota.Get(s.ctx, "clearbit")
	s.Zero(state.Used, "failed calls do not spend quota")
	s.Zero(state.Pending)
}

func (s *OrchestratorSuite) TestEnrichPerson_QuotaCapsCalls() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	mock.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).
		Return(&models.Person{FullName: "Ada Lovelace"}, nil).
		Times(50)
	s.register(personProvider{"clearbit", mock}, 50)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	engine := s.engine(orchestrator.WithMetrics(m))

	for i := range 50 {
		rec, err := engine.EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
		s.Require().NoError(err)
		s.Require().Equal([]string{"clearbit"}, rec.DataSources, "call %d", i+1)
	}

	rec, err := engine.EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)
	s.True(rec.Synthetic, "51st request is served by the synthesizer")
	s.Empty(rec.ProviderErrors, "quota skips are not failures")
	s.Equal(1.0, promtest.ToFloat64(m.QuotaSkipped.WithLabelValues("clearbit")))
	s.NotContains(s.logs.String(), "provider call failed")
}

func (s *OrchestratorSuite) TestEnrichPerson_InvalidRequest() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	s.register(personProvider{"clearbit", mock}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{CompanyDomain: "acme.io"})
	s.Nil(rec)
	s.ErrorIs(err, models.ErrInvalidRequest)
}

func (s *OrchestratorSuite) TestEnrichPerson_MalformedEmailStillEnriches() {
	byEmail := mocks.NewMockPersonEnricher(s.ctrl)
	s.register(personProvider{"clearbit", byEmail}, 50)

	s.Run("names alone synthesize a record", func() {
		rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada-at-example",
		})
		s.Require().NoError(err)
		s.Require().NotNil(rec)
		s.True(rec.Synthetic)
		s.Equal("Ada Lovelace", rec.FullName)
		s.Equal("ada.lovelace@example.com", rec.Email, "the malformed address is not echoed back")
	})

	s.Run("other keys still reach their adapters", func() {
		profiles := &profileProvider{id: "wiza", result: &models.Person{FullName: "Ada Lovelace"}}
		s.register(profiles, 100)

		rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{
			Email:       "ada-at-example",
			LinkedInURL: "https://linkedin.com/in/ada",
		})
		s.Require().NoError(err)
		s.Equal([]string{"wiza"}, rec.DataSources)
		s.Equal(int32(1), profiles.calls.Load())
	})

	state, _ := s.quota.Get(s.ctx, "clearbit")
	s.Zero(state.Used, "email-keyed adapter is never called")
}

func (s *OrchestratorSuite) TestEnrichPerson_EmptyPartialIsNotFound() {
	s.register(funcPersonProvider{"surfe", func(context.Context, string) (*models.Person, error) {
		return &models.Person{Professional: &models.Professional{}}, nil
	}}, 100)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	s.True(rec.Synthetic, "an empty answer is not real data")
	s.Equal([]string{models.SourceMockEnhanced}, rec.DataSources)
	s.Contains(rec.ProviderErrors["surfe"], "not_found")
	state, _ := s.quota.Get(s.ctx, "surfe")
	s.Zero(state.Used)
	s.Zero(state.Pending)
}

func (s *OrchestratorSuite) TestEnrichPerson_NoProvidersSynthesizes() {
	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	s.Require().NoError(err)

	s.Equal([]string{models.SourceMockEnhanced}, rec.DataSources)
	s.NotEmpty(rec.Note)
	s.True(rec.IsSynthetic())
	s.Equal("Ada Lovelace", rec.FullName)
}

func (s *OrchestratorSuite) TestEnrichPerson_AllFailuresSynthesizeWithErrors() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	mock.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorNotFound, "clearbit", "no match", nil))
	s.register(personProvider{"clearbit", mock}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)
	s.True(rec.Synthetic)
	s.Equal([]string{models.SourceMockEnhanced}, rec.DataSources)
	s.Contains(rec.ProviderErrors, "clearbit")
}

func (s *OrchestratorSuite) TestEnrichPerson_LogsMisconfiguredApartFromTransport() {
	unconfigured := mocks.NewMockPersonEnricher(s.ctrl)
	unconfigured.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(nil, providers.NotConfigured("clearbit"))
	slow := mocks.NewMockPersonEnricher(s.ctrl)
	slow.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorTimeout, "surfe", "request timed out", context.DeadlineExceeded))
	s.register(personProvider{"clearbit", unconfigured}, 50)
	s.register(personProvider{"surfe", slow}, 50)

	_, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	logs := s.logs.String()
	s.Contains(logs, `"msg":"provider misconfigured"`)
	s.Contains(logs, `"category":"misconfigured"`)
	s.Contains(logs, `"msg":"provider call failed"`)
	s.Contains(logs, `"category":"timeout"`)
	s.Contains(logs, `"request_id":"test-request"`)
}

func (s *OrchestratorSuite) TestEnrichPerson_PanickingAdapterIsContained() {
	s.register(funcPersonProvider{id: "broken", fn: func(context.Context, string) (*models.Person, error) {
		panic("boom")
	}}, 50)
	s.register(funcPersonProvider{id: "ok", fn: func(context.Context, string) (*models.Person, error) {
		return &models.Person{FullName: "Ada Lovelace"}, nil
	}}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)
	s.Equal([]string{"ok"}, rec.DataSources)
	s.Contains(rec.ProviderErrors["broken"], "internal")
}

// =============================================================================
// Strategies
// =============================================================================

func (s *OrchestratorSuite) TestSequential_UsesEmailFromEarlierProvider() {
	profile := &profileProvider{id: "wiza", result: &models.Person{
		FullName: "Ada Lovelace",
		Email:    "ada@engines.io",
	}}
	verifier := mocks.NewMockEmailVerifier(s.ctrl)
	verifier.EXPECT().VerifyEmail(gomock.Any(), "ada@engines.io").Return(&models.Person{
		Email:   "ada@engines.io",
		Contact: &models.Contact{EmailVerified: providers.Ptr(true)},
	}, nil)
	s.register(profile, 100)
	s.register(verifierProvider{"hunter", verifier}, 50)

	rec, err := s.engine().EnrichPerson(s.ctx, models.PersonRequest{LinkedInURL: "https://www.linkedin.com/in/ada"})
	s.Require().NoError(err)

	s.Equal([]string{"wiza", "hunter"}, rec.DataSources)
	s.Require().NotNil(rec.Contact)
	s.True(*rec.Contact.EmailVerified)
}

func (s *OrchestratorSuite) TestParallel_PlansFromRequestOnly() {
	profile := &profileProvider{id: "wiza", result: &models.Person{Email: "ada@engines.io"}}
	verifier := mocks.NewMockEmailVerifier(s.ctrl)
	// no expectation: the verifier has no email to work with up front
	s.register(profile, 100)
	s.register(verifierProvider{"hunter", verifier}, 50)

	rec, err := s.engine(orchestrator.WithStrategy(orchestrator.StrategyParallel)).
		EnrichPerson(s.ctx, models.PersonRequest{LinkedInURL: "https://www.linkedin.com/in/ada"})
	s.Require().NoError(err)
	s.Equal([]string{"wiza"}, rec.DataSources)
}

func (s *OrchestratorSuite) TestParallel_MergesInPriorityOrder() {
	s.register(funcPersonProvider{id: "slow", fn: func(context.Context, string) (*models.Person, error) {
		time.Sleep(30 * time.Millisecond)
		return &models.Person{FullName: "Slow Answer", Bio: "from slow"}, nil
	}}, 50)
	s.register(funcPersonProvider{id: "fast", fn: func(context.Context, string) (*models.Person, error) {
		return &models.Person{FullName: "Fast Answer", AvatarURL: "https://img.example/a.png"}, nil
	}}, 50)

	rec, err := s.engine(orchestrator.WithStrategy(orchestrator.StrategyParallel)).
		EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
	s.Require().NoError(err)

	s.Equal([]string{"slow", "fast"}, rec.DataSources)
	s.Equal("Slow Answer", rec.FullName)
	s.Equal("https://img.example/a.png", rec.AvatarURL)
}

func (s *OrchestratorSuite) TestParallel_ReleasesFailedReservations() {
	s.register(funcPersonProvider{id: "down", fn: func(context.Context, string) (*models.Person, error) {
		return nil, outage("down")
	}}, 1)

	engine := s.engine(orchestrator.WithStrategy(orchestrator.StrategyParallel))
	for range 3 {
		rec, err := engine.EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
		s.Require().NoError(err)
		s.Contains(rec.ProviderErrors, "down", "a failed call never burns the only slot")
	}
}

// =============================================================================
// Circuit breakers
// =============================================================================

func (s *OrchestratorSuite) TestBreaker_SkipsAfterTransientFailures() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	mock.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).Return(nil, outage("clearbit")).Times(2)
	s.register(personProvider{"clearbit", mock}, 50)

	now := time.Now()
	engine := s.engine(orchestrator.WithBreakers(2, circuit.WithClock(func() time.Time { return now })))
	for range 3 {
		_, err := engine.EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
		s.Require().NoError(err)
	}

	infos := engine.Providers(s.ctx)
	s.Require().Len(infos, 1)
	s.Equal(circuit.StateOpen, infos[0].Breaker)
	s.Contains(s.logs.String(), "provider circuit opened")

	state, _ := s.quota.Get(s.ctx, "clearbit")
	s.Zero(state.Pending, "skipped calls give their reservation back")
}

func (s *OrchestratorSuite) TestBreaker_IgnoresNonTransientFailures() {
	mock := mocks.NewMockPersonEnricher(s.ctrl)
	mock.EXPECT().EnrichPerson(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorNotFound, "clearbit", "no match", nil)).
		Times(3)
	s.register(personProvider{"clearbit", mock}, 50)

	engine := s.engine(orchestrator.WithBreakers(1))
	for range 3 {
		_, err := engine.EnrichPerson(s.ctx, models.PersonRequest{Email: "ada@example.com"})
		s.Require().NoError(err)
	}
	s.Equal(circuit.StateClosed, engine.Providers(s.ctx)[0].Breaker)
}

// =============================================================================
// Company enrichment
// =============================================================================

func (s *OrchestratorSuite) TestEnrichCompany_CallsEveryCompanyEnricher() {
	first := mocks.NewMockCompanyEnricher(s.ctrl)
	first.EXPECT().EnrichCompany(gomock.Any(), "stripe.com").Return(&models.Company{
		Name: "Stripe", Domain: "stripe.com", Industry: "Payments",
	}, nil)
	second := mocks.NewMockCompanyEnricher(s.ctrl)
	second.EXPECT().EnrichCompany(gomock.Any(), "stripe.com").Return(&models.Company{
		Name: "Stripe, Inc.", Employees: 8000, FoundedYear: 2010,
	}, nil)
	s.register(companyProvider{"clearbit", first}, 50)
	s.register(personProvider{"hunter", mocks.NewMockPersonEnricher(s.ctrl)}, 50)
	s.register(companyProvider{"surfe", second}, 50)

	rec, err := s.engine().EnrichCompany(s.ctx, models.CompanyRequest{Domain: "https://www.Stripe.com/about"})
	s.Require().NoError(err)

	s.Equal([]string{"clearbit", "surfe"}, rec.DataSources)
	s.Equal("Stripe", rec.Name)
	s.Equal(8000, rec.Employees)
	s.Equal(83, rec.EnrichmentScore)
	s.Equal([]string{"location"}, rec.MissingFields)
}

func (s *OrchestratorSuite) TestEnrichCompany_NameOnlySynthesizes() {
	s.register(companyProvider{"clearbit", mocks.NewMockCompanyEnricher(s.ctrl)}, 50)

	rec, err := s.engine().EnrichCompany(s.ctx, models.CompanyRequest{Name: "Acme Corp"})
	s.Require().NoError(err)
	s.True(rec.Synthetic)
	s.Equal("Acme Corp", rec.Name)
}

func (s *OrchestratorSuite) TestEnrichCompany_MalformedDomainSynthesizes() {
	s.register(companyProvider{"clearbit", mocks.NewMockCompanyEnricher(s.ctrl)}, 50)

	rec, err := s.engine().EnrichCompany(s.ctx, models.CompanyRequest{Name: "Acme", Domain: "localhost"})
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.True(rec.Synthetic)
	s.Equal("Acme", rec.Name)
}

func (s *OrchestratorSuite) TestEnrichCompany_InvalidRequest() {
	_, err := s.engine().EnrichCompany(s.ctx, models.CompanyRequest{})
	s.ErrorIs(err, models.ErrInvalidRequest)
}

// =============================================================================
// Listing
// =============================================================================

func (s *OrchestratorSuite) TestProviders() {
	s.register(companyProvider{"clearbit", mocks.NewMockCompanyEnricher(s.ctrl)}, 50)
	s.register(personProvider{"surfe", mocks.NewMockPersonEnricher(s.ctrl)}, 100)

	infos := s.engine().Providers(s.ctx)
	s.Require().Len(infos, 2)
	s.Equal("clearbit", infos[0].ID)
	s.Equal([]providers.Capability{providers.CapabilityEnrichCompany}, infos[0].Capabilities)
	s.Require().NotNil(infos[1].Quota)
	s.Equal(100, infos[1].Quota.MonthlyLimit)
	s.Empty(infos[0].Breaker, "breakers are off by default")
}

// =============================================================================
// Health
// =============================================================================

func (s *OrchestratorSuite) TestCheckHealth_ReportsAndCaches() {
	var upChecks, downChecks atomic.Int32
	s.register(healthyProvider{id: "github", checks: &upChecks, health: providers.Health{Remaining: providers.Ptr(4990)}}, 100)
	s.register(healthyProvider{id: "wiza", checks: &downChecks, err: outage("wiza")}, 100)
	s.register(personProvider{"surfe", mocks.NewMockPersonEnricher(s.ctrl)}, 100)

	m := metrics.New(prometheus.NewRegistry())
	engine := s.engine(orchestrator.WithMetrics(m))

	results := engine.CheckHealth(s.ctx)
	s.Require().Len(results, 2, "providers without a status endpoint are not checked")
	s.Equal(orchestrator.HealthOK, results["github"].Status)
	s.Require().NotNil(results["github"].Remaining)
	s.Equal(4990, *results["github"].Remaining)
	s.Equal(orchestrator.HealthUnavailable, results["wiza"].Status)
	s.Equal(providers.ErrorProviderOutage, results["wiza"].Category)
	s.Equal(testutil.FixedNow, results["wiza"].CheckedAt)
	s.Equal([]string{"wiza"}, orchestrator.Unavailable(results))
	s.Contains(s.logs.String(), "provider health check failed")

	s.Equal(1.0, promtest.ToFloat64(m.ProviderUp.WithLabelValues("github")))
	s.Equal(0.0, promtest.ToFloat64(m.ProviderUp.WithLabelValues("wiza")))

	engine.CheckHealth(testutil.ContextAt(testutil.FixedNow.Add(10 * time.Second)))
	s.Equal(int32(1), upChecks.Load(), "fresh results are reused")

	engine.CheckHealth(testutil.ContextAt(testutil.FixedNow.Add(time.Minute)))
	s.Equal(int32(2), upChecks.Load())
	s.Equal(int32(2), downChecks.Load())
}

func (s *OrchestratorSuite) TestCheckHealth_SpendsNoQuota() {
	var checks atomic.Int32
	s.register(healthyProvider{id: "github", checks: &checks}, 1)

	s.engine(orchestrator.WithHealthTTL(0)).CheckHealth(s.ctx)

	state, err := s.quota.Get(s.ctx, "github")
	s.Require().NoError(err)
	s.Equal(0, state.Used)
	s.Equal(0, state.Pending)
}

func (s *OrchestratorSuite) TestProviders_ShowLastHealth() {
	var checks atomic.Int32
	s.register(healthyProvider{id: "github", checks: &checks, health: providers.Health{Limit: providers.Ptr(5000)}}, 100)
	engine := s.engine()

	s.Nil(engine.Providers(s.ctx)[0].Health, "never checked")

	engine.CheckHealth(s.ctx)
	info := engine.Providers(s.ctx)[0]
	s.Require().NotNil(info.Health)
	s.Equal(orchestrator.HealthOK, info.Health.Status)
	s.Equal(5000, *info.Health.Limit)
}

// =============================================================================
// Concurrency
// =============================================================================

func TestConcurrentRequestsNeverOvershootQuota(t *testing.T) {
	var calls atomic.Int32
	registry := providers.NewRegistry()
	require.NoError(t, registry.Register(funcPersonProvider{id: "clearbit", fn: func(context.Context, string) (*models.Person, error) {
		calls.Add(1)
		return &models.Person{FullName: "Ada Lovelace"}, nil
	}}))
	q := quota.New(quota.WithLimits(map[string]int{"clearbit": 10}))
	engine := orchestrator.New(registry, q)

	ctx := testutil.Context()
	done := make(chan struct{})
	for range 40 {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = engine.EnrichPerson(ctx, models.PersonRequest{Email: "ada@example.com"})
		}()
	}
	for range 40 {
		<-done
	}

	assert.Equal(t, int32(10), calls.Load())
	state, err := q.Get(ctx, "clearbit")
	require.NoError(t, err)
	assert.Equal(t, 10, state.Used)
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, orchestrator.StrategyParallel, orchestrator.ParseStrategy("parallel"))
	assert.Equal(t, orchestrator.StrategySequential, orchestrator.ParseStrategy("sequential"))
	assert.Equal(t, orchestrator.StrategySequential, orchestrator.ParseStrategy(""))
}
