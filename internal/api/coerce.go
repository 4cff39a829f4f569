package api

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// maxSafeInteger is the largest integer a float64 holds exactly (2^53 - 1).
const maxSafeInteger = 1<<53 - 1

var (
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	prefixPattern  = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// coerceIDString converts s to an integer the way a loosely typed client
// would: surrounding whitespace is ignored, blank means zero, decimal and
// exponent forms are accepted when they denote a whole number, and 0x/0o/0b
// prefixes select the base. It reports false when s is not an integer.
func coerceIDString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	if integerPattern.MatchString(s) {
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	}

	if prefixPattern.MatchString(s) {
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		v, err := strconv.ParseInt(s[2:], base, 64)
		return v, err == nil
	}

	if decimalPattern.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToID(f)
	}

	return 0, false
}

func floatToID(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

// isAbsent reports whether a raw JSON field was omitted or explicitly null.
func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// coerceIDJSON converts a raw JSON value to an integer. Numbers and numeric
// strings follow coerceIDString, true and false count as 1 and 0, null as 0.
// Objects and arrays are rejected.
func coerceIDJSON(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if isAbsent(raw) {
		return 0, true
	}

	switch raw[0] {
	case 't':
		return 1, bytes.Equal(raw, []byte("true"))
	case 'f':
		return 0, bytes.Equal(raw, []byte("false"))
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		return coerceIDString(s)
	case '{', '[':
		return 0, false
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, false
		}
		return coerceIDString(n.String())
	}
}

// jsonString decodes raw as a JSON string. It reports false for any other
// JSON type.
func jsonString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
