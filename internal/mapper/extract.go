package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// getString returns the first alias whose value is a non-blank string,
// trimmed. Non-string values are skipped.
func getString(raw map[string]any, keys ...string) *string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return &trimmed
			}
		}
	}
	return nil
}

// getNumeric accepts numbers or numeric-looking strings (commas stripped)
// and rejects everything else silently.
func getNumeric(raw map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		if v := numericValue(raw[key]); v != nil {
			return v
		}
	}
	return nil
}

func getInt(raw map[string]any, keys ...string) *int {
	if f := getNumeric(raw, keys...); f != nil {
		i := int(*f)
		return &i
	}
	return nil
}

func numericValue(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64); err == nil {
			return &f
		}
	}
	return nil
}

var (
	truthyTokens = map[string]bool{"true": true, "1": true, "yes": true, "on": true}
	falsyTokens  = map[string]bool{"false": true, "0": true, "no": true, "off": true}
)

// getBool accepts literal booleans or the fixed truthy/falsy vocabulary,
// else falls back to the given default (nil meaning absent).
func getBool(raw map[string]any, defaultValue *bool, keys ...string) *bool {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case bool:
			return &v
		case string:
			lower := strings.ToLower(v)
			if truthyTokens[lower] {
				t := true
				return &t
			}
			if falsyTokens[lower] {
				f := false
				return &f
			}
		}
	}
	return defaultValue
}

func boolOrDefault(raw map[string]any, defaultValue bool, keys ...string) bool {
	if b := getBool(raw, nil, keys...); b != nil {
		return *b
	}
	return defaultValue
}

// dateLayouts are tried in order against textual date values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// parseDate attempts lenient parsing of varied textual date formats. On
// failure it logs a warning and yields absence, never an error.
func (m *Mapper) parseDate(value any) *time.Time {
	if value == nil {
		return nil
	}

	text, ok := value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	text = strings.TrimSpace(text)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return &parsed
		}
	}

	m.logger.Warn("could not parse date", zap.String("value", text))
	return nil
}

// stringifyScalar renders strings and numbers as identifier text; structured
// values yield "".
func stringifyScalar(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return fmt.Sprintf("%v", v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}
