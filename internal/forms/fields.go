package forms

import (
	"encoding/json"
	"strconv"
	"strings"
)

// StringList is a list-valued form field. On the wire it accepts either a
// JSON array of strings or a single comma-separated string; both normalize
// to trimmed, non-empty segments. A payload of any other shape is recorded
// as invalid rather than failing the decode, so the validation pass can
// report it next to every other field error.
type StringList struct {
	values  []string
	invalid bool
}

func NewStringList(values []string) StringList {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return StringList{values: out}
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	l.values = nil
	l.invalid = false

	if string(data) == "null" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		l.values = NewStringList(arr).values
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.values = ParseList(s)
		return nil
	}

	l.invalid = true
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Values())
}

func (l StringList) Values() []string {
	if l.values == nil {
		return []string{}
	}
	return l.values
}

func (l StringList) Len() int {
	return len(l.values)
}

func (l StringList) Invalid() bool {
	return l.invalid
}

// Number is a numeric form field that accepts a native JSON number or a
// non-empty numeric string. An empty or null value is unset; a non-numeric
// string is invalid and surfaces as a field error at validation time.
type Number struct {
	value   float64
	set     bool
	invalid bool
}

func NewNumber(value float64) Number {
	return Number{value: value, set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.value = 0
	n.set = false
	n.invalid = false

	if string(data) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.value = f
		n.set = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			n.invalid = true
			return nil
		}
		n.value = parsed
		n.set = true
		return nil
	}

	n.invalid = true
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n Number) Value() float64 {
	return n.value
}

func (n Number) Int() int {
	return int(n.value)
}

func (n Number) Set() bool {
	return n.set
}

func (n Number) Invalid() bool {
	return n.invalid
}
