package compass

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"compass_sync/internal/domain"
)

// object is a JSON object whose fields are decoded one at a time so that
// every failure can name the offending path.
type object struct {
	path   string
	fields map[string]json.RawMessage
}

func parseRoot(body []byte) (object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return object{}, &domain.DecodeError{Kind: domain.Malformed, Err: err}
	}
	if fields == nil {
		return object{}, &domain.DecodeError{Kind: domain.Malformed, Err: fmt.Errorf("body is not an object")}
	}
	return object{fields: fields}, nil
}

// asObject decodes raw as an object, reporting false when it is anything
// else.
func asObject(raw json.RawMessage, path string) (object, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return object{}, false
	}
	return object{path: path, fields: fields}, true
}

func (o object) fieldPath(name string) string {
	if o.path == "" {
		return name
	}
	return o.path + "." + name
}

// has reports whether name is present with a non-null value.
func (o object) has(name string) bool {
	raw, ok := o.fields[name]
	return ok && !isNull(raw)
}

func (o object) hasAll(names ...string) bool {
	for _, name := range names {
		if !o.has(name) {
			return false
		}
	}
	return true
}

func (o object) required(name string) (json.RawMessage, error) {
	if !o.has(name) {
		return nil, &domain.DecodeError{Kind: domain.MissingField, Field: o.fieldPath(name)}
	}
	return o.fields[name], nil
}

func (o object) str(name string) (string, error) {
	raw, err := o.required(name)
	if err != nil {
		return "", err
	}
	return decodeString(raw, o.fieldPath(name))
}

func (o object) optStr(name string) (*string, error) {
	if !o.has(name) {
		return nil, nil
	}
	s, err := decodeString(o.fields[name], o.fieldPath(name))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// looseStr accepts a string or a bare number, keeping the number's literal
// text.
func (o object) looseStr(name string) (string, error) {
	raw, err := o.required(name)
	if err != nil {
		return "", err
	}
	raw = bytes.TrimSpace(raw)
	if jsonKind(raw) == "number" {
		return string(raw), nil
	}
	return decodeString(raw, o.fieldPath(name))
}

func (o object) boolean(name string) (bool, error) {
	raw, err := o.required(name)
	if err != nil {
		return false, err
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, typeMismatch(o.fieldPath(name), fmt.Sprintf("expected boolean, got %s", jsonKind(bytes.TrimSpace(raw))))
	}
	return b, nil
}

func (o object) optBool(name string) (*bool, error) {
	if !o.has(name) {
		return nil, nil
	}
	b, err := o.boolean(name)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (o object) flexInt(name string) (int64, error) {
	raw, err := o.required(name)
	if err != nil {
		return 0, err
	}
	return ParseFlexibleInt(raw, o.fieldPath(name))
}

func (o object) optFlexInt(name string) (*int64, error) {
	if !o.has(name) {
		return nil, nil
	}
	v, err := ParseFlexibleInt(o.fields[name], o.fieldPath(name))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// optInt accepts JSON numbers only.
func (o object) optInt(name string) (*int, error) {
	if !o.has(name) {
		return nil, nil
	}
	v, err := parseFlexibleInt(o.fields[name], o.fieldPath(name), false)
	if err != nil {
		return nil, err
	}
	n := int(v)
	return &n, nil
}

func (o object) float(name string) (float64, error) {
	raw, err := o.required(name)
	if err != nil {
		return 0, err
	}
	return decodeFloat(raw, o.fieldPath(name))
}

func (o object) optFloat(name string) (*float64, error) {
	if !o.has(name) {
		return nil, nil
	}
	f, err := decodeFloat(o.fields[name], o.fieldPath(name))
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (o object) optObject(name string) (*object, error) {
	if !o.has(name) {
		return nil, nil
	}
	child, ok := asObject(o.fields[name], o.fieldPath(name))
	if !ok {
		return nil, typeMismatch(o.fieldPath(name), "expected object")
	}
	return &child, nil
}

// optArray returns the elements of an array field, or nil when the field is
// absent. A present but empty array yields a non-nil empty slice.
func (o object) optArray(name string) ([]json.RawMessage, error) {
	if !o.has(name) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(o.fields[name], &items); err != nil {
		return nil, typeMismatch(o.fieldPath(name), "expected array")
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

func (o object) elementPath(name string, i int) string {
	return o.fieldPath(name) + "[" + strconv.Itoa(i) + "]"
}

func decodeString(raw json.RawMessage, path string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", typeMismatch(path, fmt.Sprintf("expected string, got %s", jsonKind(bytes.TrimSpace(raw))))
	}
	return s, nil
}

func decodeFloat(raw json.RawMessage, path string) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, typeMismatch(path, fmt.Sprintf("expected number, got %s", jsonKind(bytes.TrimSpace(raw))))
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
