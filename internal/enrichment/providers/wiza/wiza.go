// Package wiza adapts the Wiza LinkedIn enrichment API.
package wiza

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	pstrings "enricher/pkg/platform/strings"
)

const (
	ProviderID = "wiza"

	DefaultBaseURL = "https://api.wiza.co/api/v1"
	DefaultTimeout = 30 * time.Second
)

// Provider implements ProfileEnricher, EmailFinder, CompanyEnricher and
// HealthChecker.
type Provider struct {
	client *providers.Client
}

func New(cfg providers.Config, opts ...providers.ClientOption) *Provider {
	return &Provider{
		client: providers.NewClient(ProviderID, cfg.WithDefaults(DefaultBaseURL, DefaultTimeout), opts...),
	}
}

func (p *Provider) ID() string { return ProviderID }

// Health reads the account's remaining credits.
func (p *Provider) Health(ctx context.Context) (providers.Health, error) {
	var resp creditsResponse
	if err := p.client.GetJSON(ctx, "/credits", nil, &resp); err != nil {
		return providers.Health{}, err
	}
	var h providers.Health
	// Credits may be a plain count or a per-product breakdown.
	var n int
	if json.Unmarshal(resp.Credits, &n) == nil {
		h.Remaining = &n
	}
	return h, nil
}

type creditsResponse struct {
	Credits json.RawMessage `json:"credits"`
}

func (p *Provider) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol: providers.ProtocolHTTP,
		Version:  "v1",
		Supported: []providers.Capability{
			providers.CapabilityEnrichProfile,
			providers.CapabilityFindEmail,
			providers.CapabilityEnrichCompany,
		},
		Inputs: []string{"linkedin_url", "first_name", "last_name", "company_domain", "domain"},
	}
}

func (p *Provider) AcceptsProfile(url string) bool {
	return providers.IsLinkedInProfile(url)
}

func (p *Provider) EnrichProfile(ctx context.Context, url string) (*models.Person, error) {
	req := profileRequest{LinkedInURL: url, IncludeEmails: true, IncludePhone: true}
	var resp profileResponse
	if err := p.client.PostJSON(ctx, "/enrich/profile", req, &resp); err != nil {
		return nil, err
	}
	person := resp.toPerson()
	if providers.EmptyPerson(person) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "empty profile payload", nil)
	}
	return person, nil
}

func (p *Provider) FindEmail(ctx context.Context, q providers.EmailQuery) (*models.Person, error) {
	req := emailRequest{FirstName: q.FirstName, LastName: q.LastName, CompanyDomain: q.Domain}
	var resp emailResponse
	if err := p.client.PostJSON(ctx, "/enrich/email", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Emails) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "no email found", nil)
	}
	return &models.Person{
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Email:     resp.Emails[0],
	}, nil
}

func (p *Provider) EnrichCompany(ctx context.Context, domain string) (*models.Company, error) {
	var resp companyResponse
	if err := p.client.PostJSON(ctx, "/enrich/company", companyRequest{CompanyDomain: domain}, &resp); err != nil {
		return nil, err
	}
	company := resp.toCompany()
	if providers.EmptyCompany(company) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "empty company payload", nil)
	}
	return company, nil
}

type profileRequest struct {
	LinkedInURL   string `json:"linkedin_url"`
	IncludeEmails bool   `json:"include_emails"`
	IncludePhone  bool   `json:"include_phone"`
}

type emailRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	CompanyDomain string `json:"company_domain"`
}

type companyRequest struct {
	CompanyDomain string `json:"company_domain"`
}

// addressList accepts either ["a@x.io"] or [{"email": "a@x.io"}].
type addressList []string

func (l *addressList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		out = append(out, obj.Email)
	}
	*l = addressList(pstrings.DedupeAndTrim(out))
	return nil
}

type profileResponse struct {
	LinkedInURL    string `json:"linkedin_url"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	Location       string `json:"location"`
	Industry       string `json:"industry"`
	CurrentCompany string `json:"current_company"`
	CurrentRole    struct {
		Title   string `json:"title"`
		Company string `json:"company"`
	} `json:"current_role"`
	Skills          []string    `json:"skills"`
	Emails          addressList `json:"emails"`
	Phones          addressList `json:"phones"`
	ProfileImageURL string      `json:"profile_image_url"`
}

func (r profileResponse) toPerson() *models.Person {
	p := &models.Person{
		FullName:  r.FullName,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Summary,
		AvatarURL: r.ProfileImageURL,
		Location:  providers.ParseLocation(r.Location),
		Skills:    pstrings.DedupeAndTrim(r.Skills),
	}
	if p.FullName == "" && r.FirstName != "" && r.LastName != "" {
		p.FullName = r.FirstName + " " + r.LastName
	}
	if len(r.Emails) > 0 {
		p.Email = r.Emails[0]
	}
	if len(r.Phones) > 0 {
		p.Contact = &models.Contact{Phone: r.Phones[0]}
	}
	if prof := (&models.Professional{
		CurrentTitle:    r.CurrentRole.Title,
		CurrentCompany:  pstrings.FirstNonEmpty(r.CurrentRole.Company, r.CurrentCompany),
		CompanyIndustry: r.Industry,
		Headline:        r.Headline,
	}); !prof.IsEmpty() {
		p.Professional = prof
	}
	if strings.TrimSpace(r.LinkedInURL) != "" {
		p.Social = &models.Social{LinkedIn: r.LinkedInURL}
	}
	return p
}

type companyResponse struct {
	CompanyName   string   `json:"company_name"`
	Domain        string   `json:"domain"`
	LinkedInURL   string   `json:"linkedin_url"`
	Website       string   `json:"website"`
	Industry      string   `json:"industry"`
	CompanySize   string   `json:"company_size"`
	EmployeeCount int      `json:"employee_count"`
	FoundedYear   int      `json:"founded_year"`
	Headquarters  string   `json:"headquarters"`
	Description   string   `json:"description"`
	RevenueRange  string   `json:"revenue_range"`
	Technologies  []string `json:"technologies"`
}

func (r companyResponse) toCompany() *models.Company {
	c := &models.Company{
		Name:          r.CompanyName,
		Domain:        r.Domain,
		Description:   r.Description,
		Industry:      r.Industry,
		Employees:     r.EmployeeCount,
		EmployeeRange: r.CompanySize,
		Revenue:       r.RevenueRange,
		FoundedYear:   r.FoundedYear,
		Location:      providers.ParseLocation(r.Headquarters),
		TechStack:     pstrings.DedupeAndTrim(r.Technologies),
	}
	if social := (&models.CompanySocial{LinkedIn: r.LinkedInURL, Website: r.Website}); !social.IsEmpty() {
		c.Social = social
	}
	return c
}
