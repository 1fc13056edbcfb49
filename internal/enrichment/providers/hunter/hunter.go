// Package hunter adapts the Hunter email verifier and email finder APIs.
package hunter

import (
	"context"
	"net/url"
	"strings"
	"time"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
)

const (
	ProviderID = "hunter"

	DefaultBaseURL = "https://api.hunter.io/v2"
	DefaultTimeout = 10 * time.Second

	resultDeliverable = "deliverable"
)

// Provider implements EmailVerifier and EmailFinder. Hunter authenticates
// with an api_key query parameter rather than a header.
type Provider struct {
	client *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) *Provider {
	opts = append([]providers.ClientOption{providers.WithQueryKeyAuth("api_key")}, opts...)
	return &Provider{
		client: providers.NewClient(ProviderID, cfg.WithDefaults(DefaultBaseURL, DefaultTimeout), opts...),
	}
}

func (p *Provider) ID() string { return ProviderID }

func (p *Provider) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol:  providers.ProtocolHTTP,
		Version:   "v2",
		Supported: []providers.Capability{providers.CapabilityVerifyEmail, providers.CapabilityFindEmail},
		Inputs:    []string{"email", "first_name", "last_name", "company_domain"},
	}
}

func (p *Provider) VerifyEmail(ctx context.Context, email string) (*models.Person, error) {
	var resp verifierResponse
	if err := p.client.GetJSON(ctx, "/email-verifier", url.Values{"email": {email}}, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Result == "" && resp.Data.Status == "" {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "verifier response has no result", nil)
	}
	return resp.toPerson(email), nil
}

func (p *Provider) FindEmail(ctx context.Context, q providers.EmailQuery) (*models.Person, error) {
	query := url.Values{
		"domain":     {q.Domain},
		"first_name": {q.FirstName},
		"last_name":  {q.LastName},
	}
	var resp finderResponse
	if err := p.client.GetJSON(ctx, "/email-finder", query, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Data.Email) == "" {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "no email found", nil)
	}
	return resp.toPerson(), nil
}

type verifierResponse struct {
	Data struct {
		Status     string `json:"status"`
		Result     string `json:"result"`
		Score      *int   `json:"score"`
		Email      string `json:"email"`
		Disposable *bool  `json:"disposable"`
		Webmail    *bool  `json:"webmail"`
	} `json:"data"`
}

func (r verifierResponse) toPerson(requested string) *models.Person {
	d := r.Data
	address := d.Email
	if address == "" {
		address = requested
	}
	status := d.Status
	if status == "" {
		status = d.Result
	}
	return &models.Person{
		Email: address,
		Contact: &models.Contact{
			EmailVerified:      providers.Ptr(d.Result == resultDeliverable),
			EmailConfidence:    d.Score,
			EmailDisposable:    d.Disposable,
			EmailWebmail:       d.Webmail,
			VerificationStatus: status,
		},
	}
}

type finderResponse struct {
	Data struct {
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Email        string `json:"email"`
		Score        *int   `json:"score"`
		Confidence   *int   `json:"confidence"`
		Domain       string `json:"domain"`
		Company      string `json:"company"`
		Position     string `json:"position"`
		LinkedInURL  string `json:"linkedin_url"`
		Twitter      string `json:"twitter"`
		PhoneNumber  string `json:"phone_number"`
		Verification struct {
			Status string `json:"status"`
		} `json:"verification"`
	} `json:"data"`
}

func (r finderResponse) toPerson() *models.Person {
	d := r.Data
	confidence := d.Score
	if confidence == nil {
		confidence = d.Confidence
	}
	p := &models.Person{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Contact: &models.Contact{
			Phone:              d.PhoneNumber,
			EmailConfidence:    confidence,
			VerificationStatus: d.Verification.Status,
		},
	}
	if d.FirstName != "" && d.LastName != "" {
		p.FullName = d.FirstName + " " + d.LastName
	}
	if prof := (&models.Professional{
		CurrentTitle:   d.Position,
		CurrentCompany: d.Company,
		CompanyDomain:  d.Domain,
	}); !prof.IsEmpty() {
		p.Professional = prof
	}
	if social := (&models.Social{
		LinkedIn: d.LinkedInURL,
		Twitter:  providers.SocialURL("https://twitter.com", d.Twitter),
	}); !social.IsEmpty() {
		p.Social = social
	}
	return p
}
