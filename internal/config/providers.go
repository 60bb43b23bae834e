package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"llm-gateway/internal/domain/model"
	"llm-gateway/internal/infrastructure/logger"
)

//go:embed embedded/providers.yml
var embeddedProvidersYAML []byte

// DefaultAnthropicVersion is the API version header value sent to Anthropic
// when a provider entry does not override it.
const DefaultAnthropicVersion = "2023-06-01"

// GlobalProviderConfig is the per-provider record shared across all routers:
// the models the provider serves, its base endpoint, and an optional default
// API version string for providers whose wire protocol wants one.
//
// NOTE: the model list is static configuration for now; later we can load
// models from the provider's API instead.
type GlobalProviderConfig struct {
	Models  []model.ModelID
	BaseURL *url.URL
	Version *string
}

// ProvidersConfig maps every configured provider to its global
// configuration, in the order the source text listed them.
//
// It is built once at startup, either from the embedded default dataset or
// from user-supplied YAML, and is read-only afterwards: concurrent readers
// need no locking. Refreshing configuration means decoding a whole new map
// and swapping it, never mutating this one in place.
type ProvidersConfig struct {
	providers *orderedmap.OrderedMap[model.InferenceProvider, *GlobalProviderConfig]
}

// Get returns the configuration for a provider, if present.
func (pc *ProvidersConfig) Get(provider model.InferenceProvider) (*GlobalProviderConfig, bool) {
	if pc == nil || pc.providers == nil {
		return nil, false
	}
	return pc.providers.Get(provider)
}

// Len returns the number of configured providers.
func (pc *ProvidersConfig) Len() int {
	if pc == nil || pc.providers == nil {
		return 0
	}
	return pc.providers.Len()
}

// Providers returns the provider keys in insertion order.
func (pc *ProvidersConfig) Providers() []model.InferenceProvider {
	if pc == nil || pc.providers == nil {
		return nil
	}
	keys := make([]model.InferenceProvider, 0, pc.providers.Len())
	for pair := pc.providers.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Oldest returns the first provider entry for insertion-order iteration:
//
//	for pair := pc.Oldest(); pair != nil; pair = pair.Next() { ... }
func (pc *ProvidersConfig) Oldest() *orderedmap.Pair[model.InferenceProvider, *GlobalProviderConfig] {
	if pc == nil || pc.providers == nil {
		return nil
	}
	return pc.providers.Oldest()
}

// rawGlobalProviderConfig is the textual shape of one provider record.
// Model strings need the provider key as parsing context, which a plain
// field-by-field decode cannot supply, so ProvidersConfig owns the
// conversion instead.
type rawGlobalProviderConfig struct {
	Models  []string `yaml:"models"`
	BaseURL string   `yaml:"base-url"`
	Version *string  `yaml:"version"`
}

// UnmarshalYAML decodes a mapping of provider tokens to provider records,
// walking the mapping one key/value pair at a time. Each model string is
// parsed under its provider's rules; any invalid entry aborts the whole
// decode with an error naming the provider and the offending string.
// A provider token appearing twice is a data-integrity error, not a merge.
func (pc *ProvidersConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a map of inference providers to their configuration", node.Line)
	}

	providers := orderedmap.New[model.InferenceProvider, *GlobalProviderConfig]()

	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		provider, err := model.ParseInferenceProvider(keyNode.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
		if _, dup := providers.Get(provider); dup {
			return &DuplicateProviderKeyError{Provider: provider, Line: keyNode.Line}
		}

		var raw rawGlobalProviderConfig
		if err := valueNode.Decode(&raw); err != nil {
			return fmt.Errorf("provider %s: %w", provider, err)
		}

		baseURL, err := parseBaseURL(raw.BaseURL)
		if err != nil {
			return &InvalidBaseURLError{Provider: provider, Raw: raw.BaseURL, Err: err}
		}

		models := make([]model.ModelID, 0, len(raw.Models))
		seen := make(map[model.ModelID]struct{}, len(raw.Models))
		for _, modelStr := range raw.Models {
			id, err := model.ParseModelID(provider, modelStr)
			if err != nil {
				return fmt.Errorf("invalid model %q for provider %s: %w", modelStr, provider, err)
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			models = append(models, id)
		}

		providers.Set(provider, &GlobalProviderConfig{
			Models:  models,
			BaseURL: baseURL,
			Version: raw.Version,
		})
	}

	pc.providers = providers
	return nil
}

// MarshalYAML is the inverse of UnmarshalYAML: providers in insertion order,
// models reformatted to text in their decoded order, and version omitted
// entirely when unset.
func (pc *ProvidersConfig) MarshalYAML() (interface{}, error) {
	type serializedGlobalProviderConfig struct {
		Models  []string `yaml:"models"`
		BaseURL string   `yaml:"base-url"`
		Version *string  `yaml:"version,omitempty"`
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for pair := pc.Oldest(); pair != nil; pair = pair.Next() {
		cfg := pair.Value
		modelStrs := make([]string, len(cfg.Models))
		for i, id := range cfg.Models {
			modelStrs[i] = id.String()
		}

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key.String()}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(serializedGlobalProviderConfig{
			Models:  modelStrs,
			BaseURL: cfg.BaseURL.String(),
			Version: cfg.Version,
		}); err != nil {
			return nil, fmt.Errorf("provider %s: %w", pair.Key, err)
		}

		root.Content = append(root.Content, keyNode, valueNode)
	}

	return root, nil
}

// parseBaseURL validates that the field is an absolute URL with a host.
// Trailing-slash handling is the URL parser's business, not ours.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("base-url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base-url must be an absolute URL")
	}
	return u, nil
}

// LoadProvidersConfig decodes a providers YAML file from disk. Used for
// user-supplied overrides of the embedded default dataset.
func LoadProvidersConfig(path string) (*ProvidersConfig, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read providers config %q: %w", cleanPath, err)
	}

	var pc ProvidersConfig
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("parse providers config %q: %w", cleanPath, err)
	}

	log := logger.GetLogger()
	log.Info().
		Str("path", cleanPath).
		Int("providers", pc.Len()).
		Msg("loaded providers config file")

	return &pc, nil
}

var (
	defaultProviders     *ProvidersConfig
	defaultProvidersOnce sync.Once
)

// DefaultProvidersConfig decodes the embedded default dataset on first use
// and returns the same map afterwards. The dataset is authored and tested
// alongside this code, so a decode failure is a defect in the shipped asset,
// not a runtime condition: it halts the process with a diagnostic naming the
// dataset rather than returning an empty map.
func DefaultProvidersConfig() *ProvidersConfig {
	defaultProvidersOnce.Do(func() {
		var pc ProvidersConfig
		if err := yaml.Unmarshal(embeddedProvidersYAML, &pc); err != nil {
			panic(fmt.Sprintf("embedded config/embedded/providers.yml is invalid: %v", err))
		}
		if pc.Len() == 0 {
			panic("embedded config/embedded/providers.yml decoded to an empty provider map")
		}
		defaultProviders = &pc
	})
	return defaultProviders
}
