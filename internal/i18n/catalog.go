package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

// TranslateFunc is the translator contract the resolvers depend on. The
// only behavior they rely on is that an unknown key is echoed back
// unchanged, possibly namespace-prefixed.
type TranslateFunc func(key string, params ...map[string]any) string

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the flattened message tables for every supported locale.
// It is built once at startup and read-only afterwards.
type Catalog struct {
	defaultLocale Locale
	messages      map[Locale]map[string]string

	// OnMiss, when set, observes every lookup that fell through to the
	// echo path. Set once at startup, before the catalog is shared.
	OnMiss func(locale Locale, key string)
}

func NewCatalog(defaultLocale Locale) (*Catalog, error) {
	catalog := &Catalog{
		defaultLocale: defaultLocale,
		messages:      make(map[Locale]map[string]string, len(SupportedLocales)),
	}
	for _, locale := range SupportedLocales {
		raw, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", locale))
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", locale, err)
		}
		var nested map[string]any
		if err := json.Unmarshal(raw, &nested); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", locale, err)
		}
		flat := make(map[string]string)
		flatten("", nested, flat)
		catalog.messages[locale] = flat
	}
	return catalog, nil
}

func flatten(prefix string, nested map[string]any, out map[string]string) {
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flatten(full, v, out)
		}
	}
}

// Translate resolves key in the given locale, falling back to the default
// locale's catalog before echoing the key. Echo-on-miss is deliberate: it
// is the signal the resolvers detect.
func (c *Catalog) Translate(locale Locale, key string, params ...map[string]any) string {
	message, ok := c.messages[locale][key]
	if !ok {
		message, ok = c.messages[c.defaultLocale][key]
	}
	if !ok {
		if c.OnMiss != nil {
			c.OnMiss(locale, key)
		}
		return key
	}
	return interpolate(message, params...)
}

// Translator binds a locale, yielding the TranslateFunc shape the
// resolvers and handlers consume.
func (c *Catalog) Translator(locale Locale) TranslateFunc {
	return func(key string, params ...map[string]any) string {
		return c.Translate(locale, key, params...)
	}
}

func interpolate(message string, params ...map[string]any) string {
	if len(params) == 0 || len(params[0]) == 0 {
		return message
	}
	for name, value := range params[0] {
		message = strings.ReplaceAll(message, "{{"+name+"}}", fmt.Sprint(value))
	}
	return message
}
