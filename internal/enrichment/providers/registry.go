package providers

import (
	"fmt"
)

// Registry holds the configured adapters. Registration order is the static
// priority order: the first registered provider is the most authoritative.
type Registry struct {
	ordered []Provider
	byID    map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Provider)}
}

// Register appends p at the lowest priority. It fails when the ID is taken
// or when p advertises a capability it does not implement.
func (r *Registry) Register(p Provider) error {
	id := p.ID()
	if id == "" {
		return fmt.Errorf("provider has empty id: %w", ErrCapabilityMismatch)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("provider %s: %w", id, ErrDuplicateProvider)
	}
	caps := p.Capabilities()
	if len(caps.Supported) == 0 {
		return fmt.Errorf("provider %s advertises no capabilities: %w", id, ErrCapabilityMismatch)
	}
	for _, c := range caps.Supported {
		if !Implements(p, c) {
			return fmt.Errorf("provider %s advertises %s: %w", id, c, ErrCapabilityMismatch)
		}
	}
	r.byID[id] = p
	r.ordered = append(r.ordered, p)
	return nil
}

// Get retrieves a provider by ID.
func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Ordered returns all providers in priority order.
func (r *Registry) Ordered() []Provider {
	out := make([]Provider, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// WithCapability returns, in priority order, the providers advertising c.
func (r *Registry) WithCapability(c Capability) []Provider {
	var out []Provider
	for _, p := range r.ordered {
		if p.Capabilities().Has(c) {
			out = append(out, p)
		}
	}
	return out
}

// IDs returns provider IDs in priority order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ordered))
	for _, p := range r.ordered {
		ids = append(ids, p.ID())
	}
	return ids
}

func (r *Registry) Len() int {
	return len(r.ordered)
}
