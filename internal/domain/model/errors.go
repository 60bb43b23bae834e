package model

import "fmt"

// InvalidProviderTokenError reports a provider key whose shape is not a
// lowercase kebab-case token. An unknown but well-formed token is not an
// error; see ParseInferenceProvider.
type InvalidProviderTokenError struct {
	Token string
}

func (e *InvalidProviderTokenError) Error() string {
	return fmt.Sprintf("invalid provider token %q: expected a lowercase kebab-case name", e.Token)
}

// InvalidVersionDateError reports a model string whose trailing version
// digits matched a provider's date rule but do not form a valid calendar
// date.
type InvalidVersionDateError struct {
	Provider InferenceProvider
	Raw      string
	Digits   string
	Err      error
}

func (e *InvalidVersionDateError) Error() string {
	return fmt.Sprintf("model %q for provider %s: version suffix %q is not a valid calendar date",
		e.Raw, e.Provider, e.Digits)
}

func (e *InvalidVersionDateError) Unwrap() error {
	return e.Err
}

// EmptyModelNameError reports a model string that is empty, or that becomes
// empty once its version suffix is stripped.
type EmptyModelNameError struct {
	Provider InferenceProvider
	Raw      string
}

func (e *EmptyModelNameError) Error() string {
	return fmt.Sprintf("model %q for provider %s: model name is empty", e.Raw, e.Provider)
}
