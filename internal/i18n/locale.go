package i18n

import "strings"

type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"
	LocaleJA Locale = "ja"
)

var SupportedLocales = []Locale{LocaleVI, LocaleEN, LocaleJA}

// ParseLocale accepts a bare locale tag or an Accept-Language style value
// ("ja-JP", "vi-VN,vi;q=0.9"). Anything unrecognized falls back to fallback.
func ParseLocale(value string, fallback Locale) Locale {
	value = strings.TrimSpace(value)
	if comma := strings.IndexByte(value, ','); comma >= 0 {
		value = value[:comma]
	}
	if semi := strings.IndexByte(value, ';'); semi >= 0 {
		value = value[:semi]
	}
	if dash := strings.IndexByte(value, '-'); dash >= 0 {
		value = value[:dash]
	}
	candidate := Locale(strings.ToLower(strings.TrimSpace(value)))
	for _, locale := range SupportedLocales {
		if locale == candidate {
			return locale
		}
	}
	return fallback
}
