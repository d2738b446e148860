package providers

import (
	"maps"
	"slices"

	"golang.org/x/text/language"
)

// Platform is the client platform a connector serves.
type Platform string

// Supported platforms
const (
	PlatformUniversal Platform = "Universal"
	PlatformWeb       Platform = "Web"
	PlatformNative    Platform = "Native"
)

// FallbackLocale is used when no requested locale matches a localized text.
const FallbackLocale = "en"

// FormItem describes one configuration field for the host's admin UI.
type FormItem struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Metadata is the static descriptor of a connector.
// Connectors build it once and hand out copies; see Clone.
type Metadata struct {
	// ID is the unique connector identifier used for config lookups
	ID string `json:"id"`

	// Target is the identity provider this connector talks to
	Target string `json:"target"`

	// Platform is the client platform the connector supports
	Platform Platform `json:"platform"`

	// Name is the display name keyed by BCP 47 locale
	Name map[string]string `json:"name"`

	// Description is the display description keyed by BCP 47 locale
	Description map[string]string `json:"description"`

	LogoURL     string `json:"logo"`
	LogoDarkURL string `json:"logoDark,omitempty"`

	// Readme is the markdown documentation shown to administrators
	Readme string `json:"readme"`

	// ConfigTemplate is an example configuration document
	ConfigTemplate string `json:"configTemplate"`

	FormItems []FormItem `json:"formItems,omitempty"`
}

// Clone returns a deep copy of m.
func (m Metadata) Clone() Metadata {
	c := m
	c.Name = maps.Clone(m.Name)
	c.Description = maps.Clone(m.Description)
	c.FormItems = slices.Clone(m.FormItems)
	return c
}

// LocalizedName returns the display name best matching tag.
func (m Metadata) LocalizedName(tag language.Tag) string {
	return localize(m.Name, tag)
}

// LocalizedDescription returns the description best matching tag.
func (m Metadata) LocalizedDescription(tag language.Tag) string {
	return localize(m.Description, tag)
}

// localize picks the entry of texts whose locale best matches tag,
// falling back to FallbackLocale.
func localize(texts map[string]string, tag language.Tag) string {
	if len(texts) == 0 {
		return ""
	}

	// The fallback locale goes first so the matcher uses it as default.
	locales := make([]string, 0, len(texts))
	if _, ok := texts[FallbackLocale]; ok {
		locales = append(locales, FallbackLocale)
	}
	for _, locale := range slices.Sorted(maps.Keys(texts)) {
		if locale != FallbackLocale {
			locales = append(locales, locale)
		}
	}

	tags := make([]language.Tag, 0, len(locales))
	keys := make([]string, 0, len(locales))
	for _, locale := range locales {
		t, err := language.Parse(locale)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		keys = append(keys, locale)
	}
	if len(tags) == 0 {
		return texts[locales[0]]
	}

	_, index, _ := language.NewMatcher(tags).Match(tag)
	return texts[keys[index]]
}
