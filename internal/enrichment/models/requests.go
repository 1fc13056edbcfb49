package models

import (
	"errors"
	"strings"

	dErrors "enricher/pkg/domain-errors"
	"enricher/pkg/email"
)

// ErrInvalidRequest marks a request that carries no correlating field.
// Validation errors wrap it so callers can match with errors.Is.
var ErrInvalidRequest = errors.New("invalid enrichment request")

const (
	maxEmailLength = 254
	maxFieldLength = 256
)

// PersonRequest identifies the person to enrich. Every field is optional but
// at least one correlating field must be present.
type PersonRequest struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	CompanyDomain  string `json:"company_domain,omitempty"`
	LinkedInURL    string `json:"linkedin_url,omitempty"`
	GitHubUsername string `json:"github_username,omitempty"`
}

// Normalize returns a trimmed copy with email and domain lowercased.
func (r PersonRequest) Normalize() PersonRequest {
	return PersonRequest{
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Email:          strings.ToLower(strings.TrimSpace(r.Email)),
		CompanyDomain:  normalizeDomain(r.CompanyDomain),
		LinkedInURL:    strings.TrimSpace(r.LinkedInURL),
		GitHubUsername: strings.TrimPrefix(strings.TrimSpace(r.GitHubUsername), "@"),
	}
}

// Validate checks a normalized request. Only a request with no correlating
// field at all is invalid; malformed values are dropped by Lookup instead.
func (r PersonRequest) Validate() error {
	if r.Email == "" && r.FirstName == "" && r.LastName == "" &&
		r.LinkedInURL == "" && r.GitHubUsername == "" {
		return invalid("one of email, first_name, last_name, linkedin_url or github_username is required")
	}
	return nil
}

// Lookup returns the copy of a normalized request used to key provider calls
// and synthesis. An email or domain that fails its shape check and any
// oversized value are cleared, so adapters keyed on them are skipped.
func (r PersonRequest) Lookup() PersonRequest {
	out := PersonRequest{
		FirstName:      bounded(r.FirstName),
		LastName:       bounded(r.LastName),
		CompanyDomain:  lookupDomain(r.CompanyDomain),
		LinkedInURL:    bounded(r.LinkedInURL),
		GitHubUsername: bounded(r.GitHubUsername),
	}
	if len(r.Email) <= maxEmailLength && email.LooksValid(r.Email) {
		out.Email = r.Email
	}
	return out
}

// CompanyRequest identifies the company to enrich by name and/or domain.
type CompanyRequest struct {
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Normalize returns a trimmed copy with the domain lowercased and stripped of
// scheme, "www." and any path.
func (r CompanyRequest) Normalize() CompanyRequest {
	return CompanyRequest{
		Name:   strings.TrimSpace(r.Name),
		Domain: normalizeDomain(r.Domain),
	}
}

// Validate checks a normalized request.
func (r CompanyRequest) Validate() error {
	if r.Name == "" && r.Domain == "" {
		return invalid("one of name or domain is required")
	}
	return nil
}

// Lookup clears a malformed domain and an oversized name.
func (r CompanyRequest) Lookup() CompanyRequest {
	return CompanyRequest{
		Name:   bounded(r.Name),
		Domain: lookupDomain(r.Domain),
	}
}

func invalid(msg string) error {
	return dErrors.Wrap(ErrInvalidRequest, dErrors.CodeInvalidInput, msg)
}

func bounded(v string) string {
	if len(v) > maxFieldLength {
		return ""
	}
	return v
}

func lookupDomain(d string) string {
	if !strings.Contains(d, ".") || strings.HasPrefix(d, ".") || strings.HasSuffix(d, ".") {
		return ""
	}
	return bounded(d)
}

func normalizeDomain(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	return d
}
