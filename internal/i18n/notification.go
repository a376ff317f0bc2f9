package i18n

import "regexp"

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TranslateNotification resolves a notification code to its localized
// message. Calendar-date params are rendered as "date with weekday" for
// the locale first, and a request spanning a single day prefers the
// <code>_SINGLE variant of the message. On any miss or translator failure
// the raw code is returned.
func TranslateNotification(code string, params map[string]any, t TranslateFunc, locale Locale) string {
	if code == "" {
		return ""
	}

	resolved := params
	if locale != "" {
		resolved = localizeDateParams(params, locale)
	}

	if singleDay(params) {
		singleKey := "codes." + code + "_SINGLE"
		result, err := tryTranslate(t, singleKey, resolved)
		if err == nil && result != "" && !echoed(result, singleKey) && result != code+"_SINGLE" {
			return result
		}
	}

	key := "codes." + code
	result, err := tryTranslate(t, key, resolved)
	if err != nil || result == "" || echoed(result, key) || result == code {
		return code
	}
	return result
}

// localizeDateParams swaps yyyy-MM-dd string params for locale-formatted
// dates with weekday. Everything else passes through untouched.
func localizeDateParams(params map[string]any, locale Locale) map[string]any {
	if len(params) == 0 {
		return params
	}
	out := make(map[string]any, len(params))
	for name, value := range params {
		if s, ok := value.(string); ok && isoDate.MatchString(s) {
			if formatted, err := FormatDateWithWeekday(s, locale); err == nil {
				out[name] = formatted
				continue
			}
		}
		out[name] = value
	}
	return out
}

// singleDay checks the raw params: startDate and endDate present and
// equal. Comparison happens before date localization so formatting cannot
// break the equality.
func singleDay(params map[string]any) bool {
	start, ok := params["startDate"].(string)
	if !ok {
		return false
	}
	end, ok := params["endDate"].(string)
	return ok && start == end
}
