// Package clearbit adapts the Clearbit person and company APIs.
package clearbit

import (
	"context"
	"net/url"
	"strings"
	"time"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	pstrings "enricher/pkg/platform/strings"
)

const (
	ProviderID = "clearbit"

	DefaultPersonURL  = "https://person.clearbit.com/v2"
	DefaultCompanyURL = "https://company.clearbit.com/v2"
	DefaultTimeout    = 15 * time.Second
)

// Provider implements PersonEnricher and CompanyEnricher.
type Provider struct {
	person  *providers.Client
	company *providers.Client
}

// New builds the adapter. A BaseURL in cfg overrides both API hosts.
func New(cfg providers.Config, opts ...providers.ClientOption) *Provider {
	companyCfg := cfg.WithDefaults(DefaultCompanyURL, DefaultTimeout)
	personCfg := cfg.WithDefaults(DefaultPersonURL, DefaultTimeout)
	return &Provider{
		person:  providers.NewClient(ProviderID, personCfg, opts...),
		company: providers.NewClient(ProviderID, companyCfg, opts...),
	}
}

func (p *Provider) ID() string { return ProviderID }

func (p *Provider) Capabilities() providers.Capabilities {
	return providers.Capabilities{
		Protocol:  providers.ProtocolHTTP,
		Version:   "v2",
		Supported: []providers.Capability{providers.CapabilityEnrichPerson, providers.CapabilityEnrichCompany},
		Inputs:    []string{"email", "domain"},
	}
}

func (p *Provider) EnrichPerson(ctx context.Context, email string) (*models.Person, error) {
	var resp personResponse
	if err := p.person.GetJSON(ctx, "/people/find", url.Values{"email": {email}}, &resp); err != nil {
		return nil, err
	}
	person := resp.toPerson()
	if providers.EmptyPerson(person) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "empty person payload", nil)
	}
	return person, nil
}

func (p *Provider) EnrichCompany(ctx context.Context, domain string) (*models.Company, error) {
	var resp companyResponse
	if err := p.company.GetJSON(ctx, "/companies/find", url.Values{"domain": {domain}}, &resp); err != nil {
		return nil, err
	}
	company := resp.toCompany()
	if providers.EmptyCompany(company) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "empty company payload", nil)
	}
	return company, nil
}

type handle struct {
	Handle string `json:"handle"`
}

type geo struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

func (g geo) toLocation(raw string) *models.Location {
	loc := &models.Location{Raw: strings.TrimSpace(raw), City: g.City, State: g.State, Country: g.Country}
	if loc.IsEmpty() {
		return nil
	}
	return loc
}

type personResponse struct {
	Name struct {
		FullName   string `json:"fullName"`
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"name"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Geo        geo    `json:"geo"`
	Bio        string `json:"bio"`
	Site       string `json:"site"`
	Avatar     string `json:"avatar"`
	Employment struct {
		Domain    string `json:"domain"`
		Name      string `json:"name"`
		Title     string `json:"title"`
		Role      string `json:"role"`
		Seniority string `json:"seniority"`
	} `json:"employment"`
	LinkedIn handle `json:"linkedin"`
	Twitter  handle `json:"twitter"`
	GitHub   handle `json:"github"`
}

func (r personResponse) toPerson() *models.Person {
	p := &models.Person{
		FullName:  r.Name.FullName,
		FirstName: r.Name.GivenName,
		LastName:  r.Name.FamilyName,
		Email:     r.Email,
		Bio:       r.Bio,
		AvatarURL: r.Avatar,
		Location:  r.Geo.toLocation(r.Location),
	}
	if prof := (&models.Professional{
		CurrentTitle:   r.Employment.Title,
		CurrentCompany: r.Employment.Name,
		CompanyDomain:  r.Employment.Domain,
		Role:           r.Employment.Role,
		Seniority:      r.Employment.Seniority,
	}); !prof.IsEmpty() {
		p.Professional = prof
	}
	if social := (&models.Social{
		LinkedIn: providers.SocialURL("https://linkedin.com", r.LinkedIn.Handle),
		Twitter:  providers.SocialURL("https://twitter.com", r.Twitter.Handle),
		GitHub:   providers.SocialURL("https://github.com", r.GitHub.Handle),
		Website:  r.Site,
	}); !social.IsEmpty() {
		p.Social = social
	}
	return p
}

type companyResponse struct {
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Phone       string `json:"phone"`
	FoundedYear int    `json:"foundedYear"`
	Location    string `json:"location"`
	Geo         geo    `json:"geo"`
	Category    struct {
		Industry string `json:"industry"`
	} `json:"category"`
	Metrics struct {
		Employees              int    `json:"employees"`
		EmployeesRange         string `json:"employeesRange"`
		EstimatedAnnualRevenue string `json:"estimatedAnnualRevenue"`
	} `json:"metrics"`
	Tech []string `json:"tech"`
	Site struct {
		URL string `json:"url"`
	} `json:"site"`
	LinkedIn handle `json:"linkedin"`
	Twitter  handle `json:"twitter"`
	Facebook handle `json:"facebook"`
}

func (r companyResponse) toCompany() *models.Company {
	c := &models.Company{
		Name:          r.Name,
		Domain:        r.Domain,
		Description:   r.Description,
		Industry:      r.Category.Industry,
		Employees:     r.Metrics.Employees,
		EmployeeRange: r.Metrics.EmployeesRange,
		Revenue:       r.Metrics.EstimatedAnnualRevenue,
		FoundedYear:   r.FoundedYear,
		Phone:         r.Phone,
		LogoURL:       r.Logo,
		Location:      r.Geo.toLocation(r.Location),
		TechStack:     pstrings.DedupeAndTrim(r.Tech),
	}
	if social := (&models.CompanySocial{
		LinkedIn: providers.SocialURL("https://linkedin.com", r.LinkedIn.Handle),
		Twitter:  providers.SocialURL("https://twitter.com", r.Twitter.Handle),
		Facebook: providers.SocialURL("https://facebook.com", r.Facebook.Handle),
		Website:  r.Site.URL,
	}); !social.IsEmpty() {
		c.Social = social
	}
	return c
}
