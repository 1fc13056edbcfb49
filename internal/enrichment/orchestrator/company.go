package orchestrator

import (
	"context"

	"enricher/internal/enrichment/metrics"
	"enricher/internal/enrichment/models"
	"enricher/internal/enrichment/providers"
	"enricher/pkg/requestcontext"
)

// EnrichCompany runs the provider loop for a company. Every company enricher
// is tried with the request domain; a name-only request, or one whose domain
// is malformed, goes straight to the synthesizer since no provider searches
// by name.
func (o *Orchestrator) EnrichCompany(ctx context.Context, req models.CompanyRequest) (*models.CompanyRecord, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		o.metrics.ObserveOutcome("company", metrics.OutcomeInvalid, 0)
		return nil, err
	}
	req = req.Lookup()

	r := execute(ctx, o, o.registry.Ordered(), companyPlanner(req), companySchema)

	if len(r.sources) == 0 {
		record := o.synthesizer.Company(ctx, req)
		record.ProviderErrors = r.errors
		o.metrics.ObserveOutcome("company", metrics.OutcomeSynthesized, record.EnrichmentScore)
		o.info(ctx, "company enrichment synthesized",
			"attempted_failures", len(r.errors),
		)
		return record, nil
	}

	scored, missing := o.companyScore.Evaluate(&r.acc)
	record := &models.CompanyRecord{
		Company: r.acc,
		Provenance: models.Provenance{
			DataSources:     r.sources,
			EnrichmentScore: scored,
			MissingFields:   missing,
			EnrichedAt:      requestcontext.Now(ctx),
			ProviderErrors:  r.errors,
		},
	}
	o.metrics.ObserveOutcome("company", metrics.OutcomeEnriched, scored)
	o.info(ctx, "company enriched",
		"data_sources", r.sources,
		"enrichment_score", scored,
	)
	return record, nil
}

var companySchema = schema[models.Company]{
	merge: func(dst, src *models.Company) { dst.MergeFrom(src) },
	empty: providers.EmptyCompany,
}

func companyPlanner(req models.CompanyRequest) planner[models.Company] {
	return func(p providers.Provider, _ *models.Company) (call[models.Company], bool) {
		e, ok := p.(providers.CompanyEnricher)
		if !ok || !p.Capabilities().Has(providers.CapabilityEnrichCompany) || req.Domain == "" {
			return call[models.Company]{}, false
		}
		domain := req.Domain
		return call[models.Company]{
			provider:   p.ID(),
			capability: providers.CapabilityEnrichCompany,
			invoke: func(ctx context.Context) (*models.Company, error) {
				return e.EnrichCompany(ctx, domain)
			},
		}, true
	}
}
