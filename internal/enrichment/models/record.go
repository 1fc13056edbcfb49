package models

import "time"

// SourceMockEnhanced is the single data source name carried by synthetic records.
const SourceMockEnhanced = "mock_enhanced"

// Provenance describes where a record came from and how complete it is.
type Provenance struct {
	DataSources     []string          `json:"data_sources"`
	EnrichmentScore int               `json:"enrichment_score"`
	MissingFields   []string          `json:"missing_fields"`
	EnrichedAt      time.Time         `json:"enriched_at"`
	Synthetic       bool              `json:"synthetic"`
	Note            string            `json:"note,omitempty"`
	ProviderErrors  map[string]string `json:"provider_errors,omitempty"`
}

// IsSynthetic reports whether the record came from the fallback synthesizer.
func (p Provenance) IsSynthetic() bool {
	return p.Synthetic
}

// PersonRecord is the result of a person enrichment, real or synthetic.
type PersonRecord struct {
	Person
	Provenance
}

// CompanyRecord is the result of a company enrichment, real or synthetic.
type CompanyRecord struct {
	Company
	Provenance
}
