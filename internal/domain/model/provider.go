package model

import (
	"regexp"
	"strings"
)

// InferenceProvider identifies an external inference service. The well-known
// providers are enumerated below, but the set is open: any lowercase
// kebab-case token decodes successfully, so new providers can appear in
// configuration before code knows about them.
type InferenceProvider string

const (
	ProviderOpenAI     InferenceProvider = "openai"
	ProviderAnthropic  InferenceProvider = "anthropic"
	ProviderGemini     InferenceProvider = "gemini"
	ProviderVertexAI   InferenceProvider = "vertexai"
	ProviderBedrock    InferenceProvider = "bedrock"
	ProviderOllama     InferenceProvider = "ollama"
	ProviderDeepSeek   InferenceProvider = "deepseek"
	ProviderGroq       InferenceProvider = "groq"
	ProviderMistral    InferenceProvider = "mistral"
	ProviderXAI        InferenceProvider = "xai"
	ProviderOpenRouter InferenceProvider = "openrouter"
)

// providerToken is the accepted shape for provider keys: lowercase
// alphanumeric segments joined by single hyphens.
var providerToken = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ParseInferenceProvider decodes a provider token. A malformed token is an
// error; an unrecognized but well-formed token is accepted verbatim as a
// named provider.
func ParseInferenceProvider(token string) (InferenceProvider, error) {
	token = strings.TrimSpace(token)
	if !providerToken.MatchString(token) {
		return "", &InvalidProviderTokenError{Token: token}
	}
	return InferenceProvider(token), nil
}

// KnownProviders lists the providers this build was compiled with.
func KnownProviders() []InferenceProvider {
	return []InferenceProvider{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderGemini,
		ProviderVertexAI,
		ProviderBedrock,
		ProviderOllama,
		ProviderDeepSeek,
		ProviderGroq,
		ProviderMistral,
		ProviderXAI,
		ProviderOpenRouter,
	}
}

// IsKnown reports whether p is one of the compiled-in providers, as opposed
// to a named provider that only exists in configuration.
func (p InferenceProvider) IsKnown() bool {
	for _, known := range KnownProviders() {
		if p == known {
			return true
		}
	}
	return false
}

// String returns the token p was decoded from.
func (p InferenceProvider) String() string {
	return string(p)
}
