package catalog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// LoadError represents an error during file I/O or document decoding
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError aggregates every invariant violation found in a catalog.
type ValidationError struct {
	Catalog string
	Errs    *multierror.Error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog %q: %v", e.Catalog, e.Errs)
}

func (e *ValidationError) Unwrap() error {
	return e.Errs
}

// Violations returns the individual invariant violations.
func (e *ValidationError) Violations() []error {
	if e.Errs == nil {
		return nil
	}
	return e.Errs.Errors
}
