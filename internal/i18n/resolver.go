package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// APIError is the error shape the backend gateway returns: a machine code
// plus an optional human message from the upstream service.
type APIError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

const genericErrorKey = "errors.generic"

// defaultGenericMessage is the rock-bottom fallback when even the generic
// key cannot be resolved. Users never see a raw lookup key.
const defaultGenericMessage = "An unexpected error occurred"

// sentenceLike matches whitespace or Latin-script diacritics. A "code"
// matching it is an already-human-readable sentence that some upstream
// paths return where a machine code belongs, and is shown verbatim.
var sentenceLike = regexp.MustCompile(`\s|[À-ÖØ-öø-ÿ\x{0100}-\x{024F}\x{1E00}-\x{1EFF}]`)

// echoed reports the translator's miss signature: the result is the key
// itself, or the key with an extra namespace prefix.
func echoed(result, key string) bool {
	return result == key || strings.HasSuffix(result, "."+key)
}

// tryTranslate shields callers from a throwing translator; a panic is
// treated exactly like a lookup miss.
func tryTranslate(t TranslateFunc, key string, params ...map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("translate %s: %v", key, r)
		}
	}()
	if t == nil {
		return key, nil
	}
	return t(key, params...), nil
}

// EnumLabel resolves the display label for an enum value via the key
// enums.<enumName>.<value>. On any miss or translator failure it degrades
// to the raw value, never to the dotted key.
func EnumLabel(enumName, value string, t TranslateFunc) string {
	if value == "" {
		return ""
	}
	key := "enums." + enumName + "." + value
	result, err := tryTranslate(t, key)
	if err != nil || result == "" || echoed(result, key) || result == enumName+"."+value {
		return value
	}
	return result
}

// ErrorMessage turns whatever an API call handed back into a user-facing
// string. input may be a code string, an APIError (or pointer), an error,
// or nil. The precedence on every failure path is: upstream original
// message, then the caller-supplied fallback, then the generic message.
func ErrorMessage(input any, t TranslateFunc, fallback ...string) string {
	callerFallback := ""
	if len(fallback) > 0 {
		callerFallback = fallback[0]
	}

	code, original := normalizeErrorInput(input)
	if code == "" {
		return firstNonEmpty(original, callerFallback, genericMessage(t))
	}

	// Upstream sometimes sends a localized sentence where a code belongs.
	if sentenceLike.MatchString(code) {
		return code
	}

	key := "errors." + code
	result, err := tryTranslate(t, key)
	if err != nil || result == "" || echoed(result, key) || result == code {
		return firstNonEmpty(original, callerFallback, genericMessage(t))
	}
	return result
}

func normalizeErrorInput(input any) (code, original string) {
	switch v := input.(type) {
	case string:
		return v, ""
	case APIError:
		return v.ErrorCode, v.Message
	case *APIError:
		if v == nil {
			return "", ""
		}
		return v.ErrorCode, v.Message
	case error:
		if v == nil {
			return "", ""
		}
		return "", v.Error()
	}
	return "", ""
}

func genericMessage(t TranslateFunc) string {
	result, err := tryTranslate(t, genericErrorKey)
	if err != nil || result == "" || echoed(result, genericErrorKey) || result == "generic" {
		return defaultGenericMessage
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
