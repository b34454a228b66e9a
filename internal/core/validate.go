package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for entry dates.
const DateLayout = "2006-01-02"

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
// time.Parse rejects out-of-range components (month 13, Feb 30, non-leap
// Feb 29), which is exactly the contract we want.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return newValidationError("date", "must be in format YYYY-MM-DD")
	}
	return nil
}

// ValidateAmount coerces v to a float64 and checks that it is strictly
// positive. Accepted inputs are numeric types, json.Number and decimal
// strings; everything else fails as not numeric.
func ValidateAmount(v any) (float64, error) {
	var (
		val float64
		err error
	)
	switch x := v.(type) {
	case float64:
		val = x
	case float32:
		val = float64(x)
	case int:
		val = float64(x)
	case int32:
		val = float64(x)
	case int64:
		val = float64(x)
	case json.Number:
		val, err = x.Float64()
	case string:
		val, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, newValidationError("amount", "must be a number")
	}
	if err != nil {
		return 0, newValidationError("amount", "must be a number")
	}
	if val <= 0 {
		return 0, newValidationError("amount", "must be positive")
	}
	return val, nil
}

// ValidateRequiredText checks that s is non-empty after trimming whitespace.
func ValidateRequiredText(s, field string) error {
	if strings.TrimSpace(s) == "" {
		return newValidationError(field, "is required")
	}
	return nil
}

// NormalizeTags converts a raw tags input into a list of trimmed, non-empty
// strings. Sequences keep their order, a string is split on commas, and any
// other input (including nil) yields an empty list. It never fails.
func NormalizeTags(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return cleanTags(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return cleanTags(parts)
	case string:
		return cleanTags(strings.Split(v, ","))
	default:
		return []string{}
	}
}

func cleanTags(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
