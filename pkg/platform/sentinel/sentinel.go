package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Registries, stores and provider
// clients return these (optionally wrapped) so callers can branch with
// errors.Is and translate them into domain errors at the edge:
//   - ErrNotFound: the named resource is not registered or does not exist
//   - ErrAlreadyExists: a resource with the same identity is already registered
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
