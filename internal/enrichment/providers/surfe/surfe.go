// Package surfe adapts the Surfe people and company enrichment API.
package surfe

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
)

const (
	ProviderID = "surfe"

	DefaultBaseURL = "https://api.surfe.com/v2"
	DefaultTimeout = 30 * time.Second
)

// Provider implements PersonEnricher, CompanyEnricher and HealthChecker.
// Surfe is a batch API; the adapter sends a batch of one and reads the first
// entry back.
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
		Protocol:  providers.ProtocolHTTP,
		Version:   "v2",
		Supported: []providers.Capability{providers.CapabilityEnrichPerson, providers.CapabilityEnrichCompany},
		Inputs:    []string{"email", "domain"},
	}
}

func (p *Provider) EnrichPerson(ctx context.Context, email string) (*models.Person, error) {
	req := peopleRequest{
		Include: include{Email: true, LinkedIn: true},
		People:  []personKey{{Email: email}},
	}
	var resp peopleResponse
	if err := p.client.PostJSON(ctx, "/people/enrich", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.People) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "no person matched", nil)
	}
	person := resp.People[0].toPerson()
	if providers.EmptyPerson(person) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "person match carried no data", nil)
	}
	return person, nil
}

func (p *Provider) EnrichCompany(ctx context.Context, domain string) (*models.Company, error) {
	req := companiesRequest{Companies: []companyKey{{Domain: domain}}}
	var resp companiesResponse
	if err := p.client.PostJSON(ctx, "/companies/enrich", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Companies) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "no company matched", nil)
	}
	company := resp.Companies[0].toCompany()
	if providers.EmptyCompany(company) {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "company match carried no data", nil)
	}
	return company, nil
}

type include struct {
	Email    bool `json:"email"`
	Mobile   bool `json:"mobile"`
	LinkedIn bool `json:"linkedin"`
}

type personKey struct {
	Email string `json:"email"`
}

type peopleRequest struct {
	Include include     `json:"include"`
	People  []personKey `json:"people"`
}

type companyKey struct {
	Domain string `json:"domain"`
}

type companiesRequest struct {
	Companies []companyKey `json:"companies"`
}

type surfePerson struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	JobTitle      string `json:"jobTitle"`
	Seniority     string `json:"seniority"`
	CompanyName   string `json:"companyName"`
	CompanyDomain string `json:"companyDomain"`
	LinkedInURL   string `json:"linkedInUrl"`
	Location      string `json:"location"`
	Country       string `json:"country"`
	Emails        []struct {
		Email            string `json:"email"`
		ValidationStatus string `json:"validationStatus"`
	} `json:"emails"`
	MobilePhones []struct {
		MobilePhone string `json:"mobilePhone"`
	} `json:"mobilePhones"`
}

type peopleResponse struct {
	People []surfePerson `json:"people"`
}

func (s surfePerson) toPerson() *models.Person {
	p := &models.Person{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Location:  providers.ParseLocation(s.Location),
	}
	if s.FirstName != "" && s.LastName != "" {
		p.FullName = s.FirstName + " " + s.LastName
	}
	if p.Location == nil && strings.TrimSpace(s.Country) != "" {
		p.Location = &models.Location{Country: s.Country}
	}
	if len(s.Emails) > 0 {
		p.Email = s.Emails[0].Email
		if status := s.Emails[0].ValidationStatus; status != "" {
			p.Contact = &models.Contact{VerificationStatus: status}
		}
	}
	if len(s.MobilePhones) > 0 && s.MobilePhones[0].MobilePhone != "" {
		if p.Contact == nil {
			p.Contact = &models.Contact{}
		}
		p.Contact.Phone = s.MobilePhones[0].MobilePhone
	}
	if prof := (&models.Professional{
		CurrentTitle:   s.JobTitle,
		CurrentCompany: s.CompanyName,
		CompanyDomain:  s.CompanyDomain,
		Seniority:      s.Seniority,
	}); !prof.IsEmpty() {
		p.Professional = prof
	}
	if s.LinkedInURL != "" {
		p.Social = &models.Social{LinkedIn: s.LinkedInURL}
	}
	return p
}

// year tolerates founding years sent as numbers or strings.
type year int

func (y *year) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = year(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*y = year(n)
	return nil
}

type surfeCompany struct {
	Name          string   `json:"name"`
	Domain        string   `json:"domain"`
	Description   string   `json:"description"`
	Industry      string   `json:"industry"`
	EmployeeCount int      `json:"employeeCount"`
	Founded       year     `json:"founded"`
	HQCountry     string   `json:"hqCountry"`
	HQAddress     string   `json:"hqAddress"`
	Revenue       string   `json:"revenue"`
	LinkedInURL   string   `json:"linkedInUrl"`
	Phones        []string `json:"phones"`
}

type companiesResponse struct {
	Companies []surfeCompany `json:"companies"`
}

func (s surfeCompany) toCompany() *models.Company {
	c := &models.Company{
		Name:        s.Name,
		Domain:      s.Domain,
		Description: s.Description,
		Industry:    s.Industry,
		Employees:   s.EmployeeCount,
		FoundedYear: int(s.Founded),
		Revenue:     s.Revenue,
	}
	if loc := (&models.Location{Raw: s.HQAddress, Country: s.HQCountry}); !loc.IsEmpty() {
		c.Location = loc
	}
	if len(s.Phones) > 0 {
		c.Phone = s.Phones[0]
	}
	if s.LinkedInURL != "" {
		c.Social = &models.CompanySocial{LinkedIn: s.LinkedInURL}
	}
	return c
}
