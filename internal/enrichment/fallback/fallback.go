// Package fallback builds clearly labeled placeholder records for requests
// that no provider could serve.
//
// Output depends only on the request and the context clock: the same request
// always yields the same record shape. Every record is tagged with the
// mock_enhanced source, Synthetic=true and a disclaimer note.
package fallback

import (
	"context"
	"fmt"
	"strings"

	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/score"
	"enricher/pkg/email"
	pstrings "enricher/pkg/platform/strings"
	"enricher/pkg/requestcontext"
)

const (
	// Note is the disclaimer carried by every synthetic record.
	Note = "synthetic placeholder data: configure provider API keys for real enrichment"

	defaultFirstName   = "Unknown"
	defaultLastName    = "Person"
	defaultCompanyName = "Unknown Company"
	defaultDomain      = "example.com"

	placeholderTitle     = "Software Engineer"
	placeholderCompany   = "Tech Innovations Inc"
	placeholderSeniority = "Senior"
	placeholderIndustry  = "Technology"
	placeholderEmployees = 150
	placeholderFounded   = 2010
)

var (
	placeholderSkills    = []string{"Python", "JavaScript", "React", "API Development"}
	placeholderTechStack = []string{"Python", "React", "PostgreSQL"}
)

func placeholderLocation() *models.Location {
	return &models.Location{
		Raw:     "San Francisco, California, United States",
		City:    "San Francisco",
		State:   "California",
		Country: "United States",
	}
}

// Synthesizer is stateless and safe for concurrent use.
type Synthesizer struct {
	person  *score.Calculator[models.Person]
	company *score.Calculator[models.Company]
}

func New() *Synthesizer {
	return &Synthesizer{
		person:  score.Person(),
		company: score.Company(),
	}
}

// Person returns a synthetic record built from req. Request names win; an
// email local part fills in missing names before the generic defaults do.
func (s *Synthesizer) Person(ctx context.Context, req models.PersonRequest) *models.PersonRecord {
	first, last := req.FirstName, req.LastName
	if (first == "" || last == "") && req.Email != "" {
		derivedFirst, derivedLast := email.DeriveNameFromEmail(req.Email)
		first = pstrings.FirstNonEmpty(first, derivedFirst)
		last = pstrings.FirstNonEmpty(last, derivedLast)
	}
	first = pstrings.FirstNonEmpty(first, defaultFirstName)
	last = pstrings.FirstNonEmpty(last, defaultLastName)

	address := req.Email
	if address == "" {
		address = fmt.Sprintf("%s.%s@%s",
			slugOr(first, "", defaultFirstName), slugOr(last, "", defaultLastName), defaultDomain)
	}

	linkedIn := req.LinkedInURL
	if linkedIn == "" {
		linkedIn = "https://linkedin.com/in/" + slugOr(first+" "+last, "-", defaultFirstName+" "+defaultLastName)
	}

	person := models.Person{
		FullName:  first + " " + last,
		FirstName: first,
		LastName:  last,
		Email:     address,
		Professional: &models.Professional{
			CurrentTitle:   placeholderTitle,
			CurrentCompany: placeholderCompany,
			CompanyDomain:  req.CompanyDomain,
			Seniority:      placeholderSeniority,
		},
		Location: placeholderLocation(),
		Social:   &models.Social{LinkedIn: linkedIn},
		Skills:   append([]string(nil), placeholderSkills...),
	}
	if req.GitHubUsername != "" {
		person.Social.GitHub = "https://github.com/" + req.GitHubUsername
	}

	scored, missing := s.person.Evaluate(&person)
	return &models.PersonRecord{
		Person:     person,
		Provenance: provenance(ctx, scored, missing, Note),
	}
}

// Company returns a synthetic record built from req. A missing name is
// derived from the domain's first label.
func (s *Synthesizer) Company(ctx context.Context, req models.CompanyRequest) *models.CompanyRecord {
	domain := pstrings.FirstNonEmpty(req.Domain, defaultDomain)
	name := req.Name
	if name == "" && req.Domain != "" {
		label, _, _ := strings.Cut(req.Domain, ".")
		name = pstrings.TitleWord(label)
	}
	name = pstrings.FirstNonEmpty(name, defaultCompanyName)

	company := models.Company{
		Name:        name,
		Domain:      domain,
		Description: name + " is a technology company.",
		Industry:    placeholderIndustry,
		Employees:   placeholderEmployees,
		FoundedYear: placeholderFounded,
		Location:    placeholderLocation(),
		TechStack:   append([]string(nil), placeholderTechStack...),
		Social: &models.CompanySocial{
			LinkedIn: "https://linkedin.com/company/" + slugOr(name, "-", defaultCompanyName),
			Twitter:  "https://twitter.com/" + slugOr(name, "", defaultCompanyName),
		},
	}

	scored, missing := s.company.Evaluate(&company)
	return &models.CompanyRecord{
		Company:    company,
		Provenance: provenance(ctx, scored, missing, Note),
	}
}

// slugOr slugs s, or fallback when s has no letters or digits.
func slugOr(s, sep, fallback string) string {
	if slug := pstrings.Slug(s, sep); slug != "" {
		return slug
	}
	return pstrings.Slug(fallback, sep)
}

func provenance(ctx context.Context, scored int, missing []string, note string) models.Provenance {
	return models.Provenance{
		DataSources:     []string{models.SourceMockEnhanced},
		EnrichmentScore: scored,
		MissingFields:   missing,
		EnrichedAt:      requestcontext.Now(ctx),
		Synthetic:       true,
		Note:            note,
	}
}
