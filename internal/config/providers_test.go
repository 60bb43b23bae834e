package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"llm-gateway/internal/domain/model"
)

func decodeProviders(t *testing.T, input string) (*ProvidersConfig, error) {
	t.Helper()
	var pc ProvidersConfig
	err := yaml.Unmarshal([]byte(input), &pc)
	return &pc, err
}

func TestDefaultProvidersConfigLoads(t *testing.T) {
	cfg := DefaultProvidersConfig()
	require.NotZero(t, cfg.Len(), "embedded dataset must not decode to an empty map")

	for _, provider := range model.KnownProviders() {
		_, ok := cfg.Get(provider)
		assert.True(t, ok, "provider %s should be present in the default config", provider)
	}

	// same map on every access
	assert.Same(t, cfg, DefaultProvidersConfig())
}

func TestDefaultProvidersConfigNamedProvider(t *testing.T) {
	cfg := DefaultProvidersConfig()

	aibadgr, ok := cfg.Get(model.InferenceProvider("aibadgr"))
	require.True(t, ok, "aibadgr provider should be present in default config")
	assert.Equal(t, "https://aibadgr.com/api/v1", aibadgr.BaseURL.String())
	require.GreaterOrEqual(t, len(aibadgr.Models), 3)

	names := make([]string, len(aibadgr.Models))
	for i, id := range aibadgr.Models {
		names[i] = id.String()
	}
	assert.Contains(t, names, "basic")
	assert.Contains(t, names, "normal")
	assert.Contains(t, names, "premium")
}

func TestProvidersConfigDecode(t *testing.T) {
	input := `
openai:
  models:
    - "gpt-4"
    - "gpt-4-turbo"
  base-url: https://api.openai.com
anthropic:
  models:
    - "claude-3-opus-20240229"
  base-url: https://api.anthropic.com
  version: "2023-06-01"
`
	cfg, err := decodeProviders(t, input)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Len())
	assert.Equal(t, []model.InferenceProvider{model.ProviderOpenAI, model.ProviderAnthropic}, cfg.Providers())

	openai, ok := cfg.Get(model.ProviderOpenAI)
	require.True(t, ok)
	require.Len(t, openai.Models, 2)
	assert.Equal(t, model.ModelID{
		Provider: model.ProviderOpenAI,
		Name:     "gpt-4",
		Version:  model.Version{Kind: model.VersionImplicitLatest},
	}, openai.Models[0])
	assert.Equal(t, "https://api.openai.com", openai.BaseURL.String())
	assert.Nil(t, openai.Version)

	anthropic, ok := cfg.Get(model.ProviderAnthropic)
	require.True(t, ok)
	require.Len(t, anthropic.Models, 1)
	assert.Equal(t, model.ModelID{
		Provider: model.ProviderAnthropic,
		Name:     "claude-3-opus",
		Version: model.Version{
			Kind:      model.VersionDate,
			Date:      time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			Layout:    "20060102",
			Separator: "-",
		},
	}, anthropic.Models[0])
	require.NotNil(t, anthropic.Version)
	assert.Equal(t, DefaultAnthropicVersion, *anthropic.Version)
}

func TestProvidersConfigDuplicateProviderKey(t *testing.T) {
	input := `
openai:
  models: ["gpt-4"]
  base-url: https://api.openai.com
openai:
  models: ["gpt-4o"]
  base-url: https://api.openai.com
`
	_, err := decodeProviders(t, input)
	var dupErr *DuplicateProviderKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, model.ProviderOpenAI, dupErr.Provider)
}

func TestProvidersConfigInvalidBaseURL(t *testing.T) {
	for _, badURL := range []string{"not a url", "/v1/chat", "api.openai.com"} {
		input := "openai:\n  models: [\"gpt-4\"]\n  base-url: \"" + badURL + "\"\n"
		_, err := decodeProviders(t, input)
		var urlErr *InvalidBaseURLError
		require.ErrorAs(t, err, &urlErr, "base-url %q should be rejected", badURL)
		assert.Equal(t, model.ProviderOpenAI, urlErr.Provider)
		assert.Contains(t, err.Error(), "openai")
	}
}

func TestProvidersConfigMissingBaseURL(t *testing.T) {
	input := `
openai:
  models: ["gpt-4"]
`
	_, err := decodeProviders(t, input)
	var urlErr *InvalidBaseURLError
	require.ErrorAs(t, err, &urlErr)
}

func TestProvidersConfigEmptyModelName(t *testing.T) {
	input := `
deepseek:
  models: [""]
  base-url: https://api.deepseek.com
`
	_, err := decodeProviders(t, input)
	var emptyErr *model.EmptyModelNameError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, model.ProviderDeepSeek, emptyErr.Provider)
	assert.Contains(t, err.Error(), "deepseek")
}

func TestProvidersConfigInvalidModelAbortsDecode(t *testing.T) {
	input := `
anthropic:
  models:
    - "claude-3-opus-20240229"
    - "claude-3-opus-20230229"
  base-url: https://api.anthropic.com
`
	cfg, err := decodeProviders(t, input)
	var dateErr *model.InvalidVersionDateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "claude-3-opus-20230229", dateErr.Raw)
	// no partial map on failure
	assert.Zero(t, cfg.Len())
}

func TestProvidersConfigInvalidProviderToken(t *testing.T) {
	input := `
Open_AI:
  models: ["gpt-4"]
  base-url: https://api.openai.com
`
	_, err := decodeProviders(t, input)
	var tokenErr *model.InvalidProviderTokenError
	require.ErrorAs(t, err, &tokenErr)
}

func TestProvidersConfigModelOrderPreserved(t *testing.T) {
	input := `
ollama:
  models: ["c-model", "a-model", "b-model"]
  base-url: http://localhost:11434
`
	cfg, err := decodeProviders(t, input)
	require.NoError(t, err)

	ollama, ok := cfg.Get(model.ProviderOllama)
	require.True(t, ok)
	got := make([]string, len(ollama.Models))
	for i, id := range ollama.Models {
		got[i] = id.String()
	}
	assert.Equal(t, []string{"c-model", "a-model", "b-model"}, got)
}

func TestProvidersConfigDuplicateModelsDeduped(t *testing.T) {
	input := `
xai:
  models: ["grok-2", "grok-beta", "grok-2"]
  base-url: https://api.x.ai
`
	cfg, err := decodeProviders(t, input)
	require.NoError(t, err)

	xai, ok := cfg.Get(model.ProviderXAI)
	require.True(t, ok)
	require.Len(t, xai.Models, 2)
	assert.Equal(t, "grok-2", xai.Models[0].String())
	assert.Equal(t, "grok-beta", xai.Models[1].String())
}

func TestProvidersConfigEncodeDecodeRoundTrip(t *testing.T) {
	original := DefaultProvidersConfig()

	out, err := yaml.Marshal(original)
	require.NoError(t, err)

	var reparsed ProvidersConfig
	require.NoError(t, yaml.Unmarshal(out, &reparsed))

	require.Equal(t, original.Providers(), reparsed.Providers())
	for pair := original.Oldest(); pair != nil; pair = pair.Next() {
		got, ok := reparsed.Get(pair.Key)
		require.True(t, ok, "provider %s lost in round trip", pair.Key)
		assert.Equal(t, pair.Value.Models, got.Models, "provider %s models", pair.Key)
		assert.Equal(t, pair.Value.BaseURL.String(), got.BaseURL.String(), "provider %s base-url", pair.Key)
		assert.Equal(t, pair.Value.Version, got.Version, "provider %s version", pair.Key)
	}
}

func TestProvidersConfigEncodeOmitsUnsetVersion(t *testing.T) {
	input := `
openai:
  models: ["gpt-4"]
  base-url: https://api.openai.com
anthropic:
  models: ["claude-3-opus-20240229"]
  base-url: https://api.anthropic.com
  version: "2023-06-01"
`
	cfg, err := decodeProviders(t, input)
	require.NoError(t, err)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.NotContains(t, doc["openai"], "version")
	assert.Equal(t, "2023-06-01", doc["anthropic"]["version"])
	// dated model formats back to its original digits
	assert.Equal(t, []any{"claude-3-opus-20240229"}, doc["anthropic"]["models"])
}

func TestProvidersConfigRejectsNonMapping(t *testing.T) {
	_, err := decodeProviders(t, "- openai\n- anthropic\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a map")
}

func TestLoadProvidersConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yml")
	contents := `
openai:
  models: ["gpt-4", "gpt-4o-2024-08-06"]
  base-url: https://api.openai.com
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadProvidersConfig(path)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Len())

	openai, ok := cfg.Get(model.ProviderOpenAI)
	require.True(t, ok)
	assert.Len(t, openai.Models, 2)
}

func TestLoadProvidersConfigMissingFile(t *testing.T) {
	_, err := LoadProvidersConfig("testdata/does-not-exist.yml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "does-not-exist.yml")
}
