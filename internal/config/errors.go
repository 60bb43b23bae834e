package config

import (
	"fmt"

	"llm-gateway/internal/domain/model"
)

// DuplicateProviderKeyError reports a provider token that appears more than
// once in one input. Keeping the last occurrence silently would hide a
// data-integrity problem from whoever edited the file.
type DuplicateProviderKeyError struct {
	Provider model.InferenceProvider
	Line     int
}

func (e *DuplicateProviderKeyError) Error() string {
	return fmt.Sprintf("line %d: provider %s is defined more than once", e.Line, e.Provider)
}

// InvalidBaseURLError reports a base-url field that does not parse as an
// absolute URL.
type InvalidBaseURLError struct {
	Provider model.InferenceProvider
	Raw      string
	Err      error
}

func (e *InvalidBaseURLError) Error() string {
	return fmt.Sprintf("provider %s: invalid base-url %q: %v", e.Provider, e.Raw, e.Err)
}

func (e *InvalidBaseURLError) Unwrap() error {
	return e.Err
}
