// Package payload decodes JSON request objects while keeping track of
// which keys were present, so partial updates can tell an absent key
// from an explicit null.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var (
	ErrNotObject   = errors.New("request body must be a JSON object")
	ErrInvalidDate = errors.New("invalid date")
)

// FieldError reports a present key whose value has the wrong type.
type FieldError struct {
	Field    string
	Expected string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Invalid value for %s: expected %s.", e.Field, e.Expected)
}

// Fields is a decoded JSON object keyed by field name.
type Fields map[string]json.RawMessage

// Parse decodes body, which must be a JSON object.
func Parse(body []byte) (Fields, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, ErrNotObject
	}
	var f Fields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, ErrNotObject
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Missing returns the keys, in order, that are not present.
func (f Fields) Missing(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if !f.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// IsNull reports whether key is absent or explicitly null.
func (f Fields) IsNull(key string) bool {
	raw, ok := f[key]
	return !ok || string(bytes.TrimSpace(raw)) == "null"
}

// String returns nil for an absent or null key.
func (f Fields) String(key string) (*string, error) {
	if f.IsNull(key) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return nil, &FieldError{Field: key, Expected: "a string"}
	}
	return &s, nil
}

// Int returns nil for an absent or null key.
func (f Fields) Int(key string) (*int, error) {
	if f.IsNull(key) {
		return nil, nil
	}
	var n json.Number
	if err := json.Unmarshal(f[key], &n); err != nil {
		return nil, &FieldError{Field: key, Expected: "an integer"}
	}
	v, err := n.Int64()
	if err != nil {
		return nil, &FieldError{Field: key, Expected: "an integer"}
	}
	i := int(v)
	return &i, nil
}

// ID returns nil for an absent or null key; present values must be positive integers.
func (f Fields) ID(key string) (*uint, error) {
	n, err := f.Int(key)
	if err != nil || n == nil {
		return nil, err
	}
	if *n <= 0 {
		return nil, &FieldError{Field: key, Expected: "a positive integer id"}
	}
	id := uint(*n)
	return &id, nil
}

// Bool returns nil for an absent or null key.
func (f Fields) Bool(key string) (*bool, error) {
	if f.IsNull(key) {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(f[key], &b); err != nil {
		return nil, &FieldError{Field: key, Expected: "a boolean"}
	}
	return &b, nil
}

// Decimal accepts a JSON number or numeric string; absent or null yields an invalid NullDecimal.
func (f Fields) Decimal(key string) (decimal.NullDecimal, error) {
	if f.IsNull(key) {
		return decimal.NullDecimal{}, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(f[key]); err != nil {
		return decimal.NullDecimal{}, &FieldError{Field: key, Expected: "a decimal number"}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// Date parses a YYYY-MM-DD calendar date in UTC. Absent, null and empty
// values yield nil; anything else that does not parse wraps ErrInvalidDate.
func (f Fields) Date(key string) (*time.Time, error) {
	s, err := f.String(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, key)
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, key)
	}
	return &t, nil
}
