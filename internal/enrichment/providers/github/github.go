// Package github adapts the GitHub REST API for developer profiles and
// organizations.
package github

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
)

const (
	ProviderID = "github"

	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 10 * time.Second
)

// GitHub logins: alphanumerics and single hyphens, at most 39 characters.
var loginRe = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// reserved top-level github.com paths that are not user profiles.
var reserved = map[string]struct{}{
	"orgs": {}, "settings": {}, "marketplace": {}, "features": {}, "about": {},
	"pricing": {}, "explore": {}, "topics": {}, "login": {}, "sponsors": {},
}

// Provider implements ProfileEnricher, CompanyEnricher and HealthChecker.
type Provider struct {
	client *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) *Provider {
	opts = append([]providers.ClientOption{
		providers.WithHeader("Accept", "application/vnd.github+json"),
		providers.WithHeader("X-GitHub-Api-Version", "2022-11-28"),
	}, opts...)
	return &Provider{
		client: providers.NewClient(ProviderID, cfg.WithDefaults(DefaultBaseURL, DefaultTimeout), opts...),
	}
}

func (p *Provider) ID() string { return ProviderID }

func (p *Provider) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol:  providers.ProtocolHTTP,
		Version:   "2022-11-28",
		Supported: []providers.Capability{providers.CapabilityEnrichProfile, providers.CapabilityEnrichCompany},
		Inputs:    []string{"github_username", "domain"},
	}
}

// ProfileURL builds the canonical profile URL for a login.
func ProfileURL(login string) string {
	return "https://github.com/" + strings.TrimPrefix(strings.TrimSpace(login), "@")
}

// LoginFromURL extracts the login from a github.com profile URL.
func LoginFromURL(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return "", false
	}
	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		return "", false
	}
	if _, ok := reserved[strings.ToLower(path)]; ok {
		return "", false
	}
	return path, loginRe.MatchString(path)
}

func (p *Provider) AcceptsProfile(raw string) bool {
	_, ok := LoginFromURL(raw)
	return ok
}

func (p *Provider) EnrichProfile(ctx context.Context, raw string) (*models.Person, error) {
	login, ok := LoginFromURL(raw)
	if !ok {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "not a github profile url", nil)
	}
	var resp userResponse
	if err := p.client.GetJSON(ctx, "/users/"+url.PathEscape(login), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Login == "" {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "user payload has no login", nil)
	}
	return resp.toPerson(), nil
}

// OrgFromDomain guesses an organization login from the first domain label.
func OrgFromDomain(domain string) string {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	label, _, _ := strings.Cut(domain, ".")
	return label
}

func (p *Provider) EnrichCompany(ctx context.Context, domain string) (*models.Company, error) {
	org := OrgFromDomain(domain)
	if !loginRe.MatchString(org) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "domain does not map to an organization", nil)
	}
	var resp orgResponse
	if err := p.client.GetJSON(ctx, "/orgs/"+url.PathEscape(org), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Login == "" {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "org payload has no login", nil)
	}
	return resp.toCompany(domain), nil
}

// Health reads /rate_limit, which GitHub does not count against the quota.
func (p *Provider) Health(ctx context.Context) (providers.Health, error) {
	var resp rateLimitResponse
	if err := p.client.GetJSON(ctx, "/rate_limit", nil, &resp); err != nil {
		return providers.Health{}, err
	}
	if resp.Rate.Limit == 0 {
		return providers.Health{}, providers.NewProviderError(providers.ErrorBadData, ProviderID, "rate limit payload has no limit", nil)
	}
	h := providers.Health{
		Remaining: providers.Ptr(resp.Rate.Remaining),
		Limit:     providers.Ptr(resp.Rate.Limit),
	}
	if resp.Rate.Reset > 0 {
		h.ResetAt = providers.Ptr(time.Unix(resp.Rate.Reset, 0).UTC())
	}
	return h, nil
}

type rateLimitResponse struct {
	Rate struct {
		Limit     int   `json:"limit"`
		Remaining int   `json:"remaining"`
		Reset     int64 `json:"reset"`
	} `json:"rate"`
}

type userResponse struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Bio             string `json:"bio"`
	Company         string `json:"company"`
	Location        string `json:"location"`
	Blog            string `json:"blog"`
	TwitterUsername string `json:"twitter_username"`
	AvatarURL       string `json:"avatar_url"`
	HTMLURL         string `json:"html_url"`
}

func (r userResponse) toPerson() *models.Person {
	p := &models.Person{
		FullName:  strings.TrimSpace(r.Name),
		Email:     r.Email,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		Location:  providers.ParseLocation(r.Location),
		Social: &models.Social{
			GitHub:  providers.SocialURL("https://github.com", r.Login),
			Twitter: providers.SocialURL("https://twitter.com", r.TwitterUsername),
			Website: r.Blog,
		},
	}
	if first, last, ok := strings.Cut(p.FullName, " "); ok {
		p.FirstName, p.LastName = first, strings.TrimSpace(last)
	}
	if company := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(r.Company), "@")); company != "" {
		p.Professional = &models.Professional{CurrentCompany: company}
	}
	return p
}

type orgResponse struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Blog            string `json:"blog"`
	Location        string `json:"location"`
	TwitterUsername string `json:"twitter_username"`
	AvatarURL       string `json:"avatar_url"`
	HTMLURL         string `json:"html_url"`
}

func (r orgResponse) toCompany(domain string) *models.Company {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = r.Login
	}
	c := &models.Company{
		Name:        name,
		Description: r.Description,
		LogoURL:     r.AvatarURL,
		Location:    providers.ParseLocation(r.Location),
		Social: &models.CompanySocial{
			GitHub:  providers.SocialURL("https://github.com", r.Login),
			Twitter: providers.SocialURL("https://twitter.com", r.TwitterUsername),
			Website: r.Blog,
		},
	}
	// Only claim the domain when the org itself links to it.
	if domain != "" && strings.Contains(strings.ToLower(r.Blog), strings.ToLower(domain)) {
		c.Domain = domain
	}
	return c
}
