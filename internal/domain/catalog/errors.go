// internal/domain/catalog/errors.go
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned while the catalog cache has not completed its
// first successful refresh.
var ErrNotLoaded = errors.New("catalog not loaded yet")

// LoadError reports a failed catalog fetch: a transport failure or a
// failure flag in the response envelope.
type LoadError struct {
	Resource string // "menu" or "supplements"
	Err      error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying cause
func (e *LoadError) Unwrap() error {
	return e.Err
}
