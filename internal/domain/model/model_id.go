package model

import (
	"regexp"
	"time"
)

// VersionKind discriminates the ways a model's release can be qualified.
type VersionKind int

const (
	// VersionImplicitLatest means no explicit version was present in the
	// source string; the identifier always refers to whatever is current.
	VersionImplicitLatest VersionKind = iota
	// VersionDate means a calendar date was extracted from a trailing
	// numeric suffix of the raw model name.
	VersionDate
	// VersionTag is reserved for providers whose version suffixes are not
	// dates. No built-in rule produces it yet; it exists so a free-form
	// suffix can be carried losslessly once a provider needs one.
	VersionTag
)

// Version qualifies a model's release.
//
// A date version keeps the time layout and separator it was extracted with,
// because providers render dates differently and formatting must reproduce
// the original digits. Dates are UTC midnight; no other time component is
// implied.
type Version struct {
	Kind      VersionKind
	Date      time.Time
	Layout    string
	Separator string
	Tag       string
}

// ModelID is a provider-scoped structured model name: the base name with any
// version suffix stripped, plus the version qualifier. Build it with
// ParseModelID so the owning provider's suffix rules are applied; two IDs are
// equal iff provider, name, and version all match.
type ModelID struct {
	Provider InferenceProvider
	Name     string
	Version  Version
}

// versionRule recognizes one trailing version suffix shape. The pattern is
// anchored at the end of the raw name and captures the date digits; layout
// renders the parsed date back to those digits.
type versionRule struct {
	pattern   *regexp.Regexp
	layout    string
	separator string
}

// versionRules maps each provider to its recognized suffix shapes, most
// specific first. Providers without an entry, including every named
// provider, have no version grammar: their model names pass through whole.
//
// Examples:
//
//	anthropic "claude-3-opus-20240229"   => name "claude-3-opus", date 2024-02-29
//	openai    "gpt-4o-2024-08-06"        => name "gpt-4o", date 2024-08-06
//	vertexai  "claude-3-5-sonnet@20240620" => name "claude-3-5-sonnet", date 2024-06-20
//	mistral   "mistral-large-2411"       => name "mistral-large", date 2024-11-01
//	openai    "claude-3-opus-20240229"   => name unchanged, implicit latest
var versionRules = map[InferenceProvider][]versionRule{
	ProviderAnthropic: {
		{pattern: regexp.MustCompile(`-(\d{8})$`), layout: "20060102", separator: "-"},
	},
	ProviderOpenAI: {
		{pattern: regexp.MustCompile(`-(\d{4}-\d{2}-\d{2})$`), layout: "2006-01-02", separator: "-"},
	},
	ProviderVertexAI: {
		{pattern: regexp.MustCompile(`@(\d{8})$`), layout: "20060102", separator: "@"},
	},
	ProviderMistral: {
		{pattern: regexp.MustCompile(`-(\d{4})$`), layout: "0601", separator: "-"},
	},
}

// ParseModelID parses a raw model string under the rules of the provider
// that owns it. The same raw string can parse differently for different
// providers: a trailing numeric token is only a release date where the
// provider's grammar says so.
//
// Parsing is pure: no I/O, no side effects. For every successfully parsed
// id, ParseModelID(provider, id.String()) yields an equal id.
func ParseModelID(provider InferenceProvider, raw string) (ModelID, error) {
	if raw == "" {
		return ModelID{}, &EmptyModelNameError{Provider: provider, Raw: raw}
	}

	for _, rule := range versionRules[provider] {
		match := rule.pattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}

		name := raw[:len(raw)-len(match[0])]
		if name == "" {
			return ModelID{}, &EmptyModelNameError{Provider: provider, Raw: raw}
		}

		digits := match[1]
		date, err := time.ParseInLocation(rule.layout, digits, time.UTC)
		if err != nil {
			return ModelID{}, &InvalidVersionDateError{
				Provider: provider,
				Raw:      raw,
				Digits:   digits,
				Err:      err,
			}
		}

		return ModelID{
			Provider: provider,
			Name:     name,
			Version: Version{
				Kind:      VersionDate,
				Date:      date,
				Layout:    rule.layout,
				Separator: rule.separator,
			},
		}, nil
	}

	return ModelID{
		Provider: provider,
		Name:     raw,
		Version:  Version{Kind: VersionImplicitLatest},
	}, nil
}

// String renders the id back to its textual form. Dated and tagged versions
// reproduce their original suffix; an implicit-latest id is just the name.
func (m ModelID) String() string {
	switch m.Version.Kind {
	case VersionDate:
		return m.Name + m.Version.Separator + m.Version.Date.Format(m.Version.Layout)
	case VersionTag:
		return m.Name + m.Version.Separator + m.Version.Tag
	default:
		return m.Name
	}
}
