// Package score measures how complete an enriched record is.
//
// A Calculator holds an ordered list of key fields. Each field is a dotted
// path plus an accessor that reports whether the record fills it; accessors
// short-circuit on nil groups, so a missing intermediate group counts as an
// unfilled field rather than a panic.
package score

import (
	"math"
	"strings"

	"enricher/internal/enrichment/models"
)

// Field is one key field of an entity.
type Field[T any] struct {
	Path   string
	Filled func(*T) bool
}

// Calculator scores records of type T against a fixed field list. It holds
// no mutable state and is safe for concurrent use.
type Calculator[T any] struct {
	fields []Field[T]
}

func New[T any](fields ...Field[T]) *Calculator[T] {
	return &Calculator[T]{fields: fields}
}

// Paths returns the key field paths in order.
func (c *Calculator[T]) Paths() []string {
	out := make([]string, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.Path
	}
	return out
}

// Score returns round(filled/total*100). A nil record or an empty field list
// scores 0.
func (c *Calculator[T]) Score(record *T) int {
	if record == nil || len(c.fields) == 0 {
		return 0
	}
	filled := 0
	for _, f := range c.fields {
		if f.Filled(record) {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(c.fields)) * 100))
}

// Missing lists the paths the record leaves unfilled, in field order.
func (c *Calculator[T]) Missing(record *T) []string {
	missing := []string{}
	for _, f := range c.fields {
		if record == nil || !f.Filled(record) {
			missing = append(missing, f.Path)
		}
	}
	return missing
}

// Evaluate returns Score and Missing in one pass.
func (c *Calculator[T]) Evaluate(record *T) (int, []string) {
	return c.Score(record), c.Missing(record)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Person scores the six person key fields.
func Person() *Calculator[models.Person] {
	return New(
		Field[models.Person]{Path: "full_name", Filled: func(p *models.Person) bool {
			return present(p.FullName)
		}},
		Field[models.Person]{Path: "email", Filled: func(p *models.Person) bool {
			return present(p.Email)
		}},
		Field[models.Person]{Path: "professional.current_title", Filled: func(p *models.Person) bool {
			return p.Professional != nil && present(p.Professional.CurrentTitle)
		}},
		Field[models.Person]{Path: "professional.current_company", Filled: func(p *models.Person) bool {
			return p.Professional != nil && present(p.Professional.CurrentCompany)
		}},
		Field[models.Person]{Path: "social.linkedin", Filled: func(p *models.Person) bool {
			return p.Social != nil && present(p.Social.LinkedIn)
		}},
		Field[models.Person]{Path: "location", Filled: func(p *models.Person) bool {
			return !p.Location.IsEmpty()
		}},
	)
}

// Company scores the six company key fields.
func Company() *Calculator[models.Company] {
	return New(
		Field[models.Company]{Path: "name", Filled: func(c *models.Company) bool {
			return present(c.Name)
		}},
		Field[models.Company]{Path: "domain", Filled: func(c *models.Company) bool {
			return present(c.Domain)
		}},
		Field[models.Company]{Path: "industry", Filled: func(c *models.Company) bool {
			return present(c.Industry)
		}},
		Field[models.Company]{Path: "employees", Filled: func(c *models.Company) bool {
			return c.Employees != 0
		}},
		Field[models.Company]{Path: "founded_year", Filled: func(c *models.Company) bool {
			return c.FoundedYear != 0
		}},
		Field[models.Company]{Path: "location", Filled: func(c *models.Company) bool {
			return !c.Location.IsEmpty()
		}},
	)
}
