package handler

import (
	"enricher/internal/enrichment/models"
)

// PersonBody is the HTTP request body for POST /v1/enrich/person.
type PersonBody struct {
	models.PersonRequest
}

// Validate normalizes the body in place and checks it.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (b *PersonBody) Validate() error {
	b.PersonRequest = b.PersonRequest.Normalize()
	return b.PersonRequest.Validate()
}

// CompanyBody is the HTTP request body for POST /v1/enrich/company.
type CompanyBody struct {
	models.CompanyRequest
}

// Validate normalizes the body in place and checks it.
func (b *CompanyBody) Validate() error {
	b.CompanyRequest = b.CompanyRequest.Normalize()
	return b.CompanyRequest.Validate()
}
