package providers

import (
	"context"
	"slices"

	"enricher/internal/enrichment/models"
)

// Protocol defines the transport used to reach a provider.
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
)

// Capability names one operation an adapter can perform.
type Capability string

const (
	CapabilityEnrichPerson  Capability = "enrichPerson"
	CapabilityEnrichCompany Capability = "enrichCompany"
	CapabilityVerifyEmail   Capability = "verifyEmail"
	CapabilityFindEmail     Capability = "findEmail"
	CapabilityEnrichProfile Capability = "enrichProfile"
)

// Capabilities describes what a provider supports.
type Capabilities struct {
	Protocol  Protocol
	Version   string       // Provider API version
	Supported []Capability // Operations the adapter implements
	Inputs    []string     // Request fields the adapter can consume: "email", "domain", "linkedin_url"...
}

// Has reports whether c is advertised.
func (c Capabilities) Has(capability Capability) bool {
	return slices.Contains(c.Supported, capability)
}

// Provider is the interface every adapter implements. The operations
// themselves live on the capability interfaces below; an adapter implements
// exactly the ones it advertises.
type Provider interface {
	// ID returns the provider name used for quota, logs and data_sources.
	ID() string

	// Capabilities returns what this provider supports.
	Capabilities() Capabilities
}

// PersonEnricher looks a person up by email address.
type PersonEnricher interface {
	EnrichPerson(ctx context.Context, email string) (*models.Person, error)
}

// CompanyEnricher looks a company up by its web domain.
type CompanyEnricher interface {
	EnrichCompany(ctx context.Context, domain string) (*models.Company, error)
}

// EmailVerifier checks deliverability of an address. The returned person
// carries the email and contact verification fields.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, email string) (*models.Person, error)
}

// EmailQuery is the input to an email finder.
type EmailQuery struct {
	FirstName string
	LastName  string
	Domain    string
}

// Complete reports whether every field needed to search is present.
func (q EmailQuery) Complete() bool {
	return q.FirstName != "" && q.LastName != "" && q.Domain != ""
}

// EmailFinder discovers a likely address from a name and company domain.
type EmailFinder interface {
	FindEmail(ctx context.Context, query EmailQuery) (*models.Person, error)
}

// ProfileEnricher looks a person up by a public profile URL.
type ProfileEnricher interface {
	// AcceptsProfile reports whether url is a profile this provider can resolve.
	AcceptsProfile(url string) bool
	EnrichProfile(ctx context.Context, url string) (*models.Person, error)
}

// Implements reports whether p has the Go method set for capability.
func Implements(p Provider, capability Capability) bool {
	switch capability {
	case CapabilityEnrichPerson:
		_, ok := p.(PersonEnricher)
		return ok
	case CapabilityEnrichCompany:
		_, ok := p.(CompanyEnricher)
		return ok
	case CapabilityVerifyEmail:
		_, ok := p.(EmailVerifier)
		return ok
	case CapabilityFindEmail:
		_, ok := p.(EmailFinder)
		return ok
	case CapabilityEnrichProfile:
		_, ok := p.(ProfileEnricher)
		return ok
	}
	return false
}
