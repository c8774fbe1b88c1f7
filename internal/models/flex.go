// internal/models/flex.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The external generator and the quiz form both emit numbers and strings
// interchangeably ("msrp": "55890" vs "msrp": 55890). These types absorb that
// at the decode boundary so downstream code only sees one representation.

// FlexString decodes a JSON string or bare number into a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	// bare number token, keep its text
	*f = FlexString(s)
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexFloat decodes a JSON number or numeric string. Unparseable input
// decodes to zero rather than failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }

// FlexInt decodes a JSON number or numeric string into an int, zero on
// unparseable input. Fractional numbers truncate.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var ff FlexFloat
	if err := ff.UnmarshalJSON(data); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(ff))
	return nil
}

func (f FlexInt) Int() int { return int(f) }

// OptionalFloat decodes a possibly-absent numeric field with the quiz form's
// falsy semantics: null, empty string, zero, and unparseable values all count
// as "not set".
type OptionalFloat struct {
	Value float64
	Valid bool
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		o.Valid = false
		return nil
	}
	o.Value = float64(f)
	o.Valid = o.Value != 0
	return nil
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr returns the value as a nullable pointer.
func (o OptionalFloat) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// StringList decodes a JSON string or array of strings.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*s = nil
		return nil
	}
	*s = []string{single}
	return nil
}

// Join renders the list for prompt text, falling back when empty.
func (s StringList) Join(fallback string) string {
	if len(s) == 0 {
		return fallback
	}
	return strings.Join(s, ", ")
}
