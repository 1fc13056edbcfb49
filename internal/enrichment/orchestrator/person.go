package orchestrator

import (
	"context"

	"enricher/internal/enrichment/metrics"
	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	pstrings "enricher/pkg/platform/strings"
	"enricher/pkg/requestcontext"
)

const githubProfileRoot = "https://github.com/"

// EnrichPerson runs the provider loop for a person. The only error is an
// invalid request; provider failures end in a synthetic record at worst.
// Malformed keys are dropped, so e.g. a bad email skips email lookups.
func (o *Orchestrator) EnrichPerson(ctx context.Context, req models.PersonRequest) (*models.PersonRecord, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		o.metrics.ObserveOutcome("person", metrics.OutcomeInvalid, 0)
		return nil, err
	}
	req = req.Lookup()

	r := execute(ctx, o, o.registry.Ordered(), personPlanner(req), personSchema)

	if len(r.sources) == 0 {
		record := o.synthesizer.Person(ctx, req)
		record.ProviderErrors = r.errors
		o.metrics.ObserveOutcome("person", metrics.OutcomeSynthesized, record.EnrichmentScore)
		o.info(ctx, "person enrichment synthesized",
			"attempted_failures", len(r.errors),
		)
		return record, nil
	}

	scored, missing := o.personScore.Evaluate(&r.acc)
	record := &models.PersonRecord{
		Person: r.acc,
		Provenance: models.Provenance{
			DataSources:     r.sources,
			EnrichmentScore: scored,
			MissingFields:   missing,
			EnrichedAt:      requestcontext.Now(ctx),
			ProviderErrors:  r.errors,
		},
	}
	o.metrics.ObserveOutcome("person", metrics.OutcomeEnriched, scored)
	o.info(ctx, "person enriched",
		"data_sources", r.sources,
		"enrichment_score", scored,
	)
	return record, nil
}

var personSchema = schema[models.Person]{
	merge: func(dst, src *models.Person) { dst.MergeFrom(src) },
	empty: providers.EmptyPerson,
}

// personPlanner chooses at most one call per provider, preferring a direct
// email lookup, then a profile lookup, then verification, then an email
// search. Fields the accumulator already holds count as inputs.
func personPlanner(req models.PersonRequest) planner[models.Person] {
	return func(p providers.Provider, acc *models.Person) (call[models.Person], bool) {
		id := p.ID()
		caps := p.Capabilities()
		email := pstrings.FirstNonEmpty(req.Email, acc.Email)

		if e, ok := p.(providers.PersonEnricher); ok && caps.Has(providers.CapabilityEnrichPerson) && email != "" {
			return call[models.Person]{
				provider:   id,
				capability: providers.CapabilityEnrichPerson,
				invoke: func(ctx context.Context) (*models.Person, error) {
					return e.EnrichPerson(ctx, email)
				},
			}, true
		}

		if e, ok := p.(providers.ProfileEnricher); ok && caps.Has(providers.CapabilityEnrichProfile) {
			if url := acceptedProfile(e, profileCandidates(req, acc)); url != "" {
				return call[models.Person]{
					provider:   id,
					capability: providers.CapabilityEnrichProfile,
					invoke: func(ctx context.Context) (*models.Person, error) {
						return e.EnrichProfile(ctx, url)
					},
				}, true
			}
		}

		if v, ok := p.(providers.EmailVerifier); ok && caps.Has(providers.CapabilityVerifyEmail) && email != "" {
			return call[models.Person]{
				provider:   id,
				capability: providers.CapabilityVerifyEmail,
				invoke: func(ctx context.Context) (*models.Person, error) {
					return v.VerifyEmail(ctx, email)
				},
			}, true
		}

		if f, ok := p.(providers.EmailFinder); ok && caps.Has(providers.CapabilityFindEmail) {
			query := providers.EmailQuery{
				FirstName: pstrings.FirstNonEmpty(req.FirstName, acc.FirstName),
				LastName:  pstrings.FirstNonEmpty(req.LastName, acc.LastName),
				Domain:    req.CompanyDomain,
			}
			if query.Domain == "" && acc.Professional != nil {
				query.Domain = acc.Professional.CompanyDomain
			}
			if query.Complete() {
				return call[models.Person]{
					provider:   id,
					capability: providers.CapabilityFindEmail,
					invoke: func(ctx context.Context) (*models.Person, error) {
						return f.FindEmail(ctx, query)
					},
				}, true
			}
		}

		return call[models.Person]{}, false
	}
}

// profileCandidates lists the profile URLs known for the person, request
// values first.
func profileCandidates(req models.PersonRequest, acc *models.Person) []string {
	var urls []string
	if req.LinkedInURL != "" {
		urls = append(urls, req.LinkedInURL)
	}
	if req.GitHubUsername != "" {
		urls = append(urls, githubProfileRoot+req.GitHubUsername)
	}
	if acc.Social != nil {
		for _, u := range []string{acc.Social.LinkedIn, acc.Social.GitHub} {
			if u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

func acceptedProfile(e providers.ProfileEnricher, urls []string) string {
	for _, u := range urls {
		if e.AcceptsProfile(u) {
			return u
		}
	}
	return ""
}
