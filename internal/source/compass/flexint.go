package compass

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"compass_sync/internal/domain"
)

// FlexibleInt decodes an integer the backend may send either as a JSON
// number or as a base-10 numeric string. It always encodes as a number.
type FlexibleInt int64

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	v, err := parseFlexibleInt(data, "", true)
	if err != nil {
		return err
	}
	*f = FlexibleInt(v)
	return nil
}

func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(f), 10), nil
}

// ParseFlexibleInt decodes raw as an integer. Accepted forms are an
// integral JSON number (5, 5.0) and a string holding a base-10 integer,
// optionally padded with whitespace ("5", "  5"). Anything else, null and
// booleans included, is a TypeMismatch naming field.
func ParseFlexibleInt(raw json.RawMessage, field string) (int64, error) {
	return parseFlexibleInt(raw, field, true)
}

func parseFlexibleInt(raw []byte, field string, allowString bool) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, typeMismatch(field, "empty value")
	}

	switch c := raw[0]; {
	case c == '"':
		if !allowString {
			return 0, typeMismatch(field, "expected number, got string")
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, typeMismatch(field, "invalid string")
		}
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, typeMismatch(field, fmt.Sprintf("string %q is not an integer", s))
		}
		return v, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return parseNumber(raw, field)
	default:
		return 0, typeMismatch(field, fmt.Sprintf("expected integer, got %s", jsonKind(raw)))
	}
}

func parseNumber(raw []byte, field string) (int64, error) {
	if v, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, typeMismatch(field, fmt.Sprintf("invalid number %s", raw))
	}
	if f != math.Trunc(f) {
		return 0, typeMismatch(field, fmt.Sprintf("number %s is not integral", raw))
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= 0x1p63 || f < -0x1p63 {
		return 0, typeMismatch(field, fmt.Sprintf("number %s overflows int64", raw))
	}
	return int64(f), nil
}

func typeMismatch(field, reason string) error {
	return &domain.DecodeError{
		Kind:  domain.TypeMismatch,
		Field: field,
		Err:   errors.New(reason),
	}
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	default:
		return "number"
	}
}
