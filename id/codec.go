package id

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

var errNull = errors.New("null is not a valid id")

// Parse decodes the textual form of a raw value, not the display form.
func Parse[E any, R comparable](s string) (ID[E, R], error) {
	raw, err := parseRaw[R](s)
	if err != nil {
		return ID[E, R]{}, formatError[E](s, err)
	}
	return FromRaw[E](raw), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse[E any, R comparable](s string) ID[E, R] {
	i, err := Parse[E, R](s)
	if err != nil {
		panic(err)
	}
	return i
}

// MarshalJSON encodes exactly the raw value.
func (i ID[E, R]) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.raw)
}

// UnmarshalJSON decodes the raw value. null is rejected.
func (i *ID[E, R]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return formatError[E](string(data), errNull)
	}
	var raw R
	if err := json.Unmarshal(data, &raw); err != nil {
		return formatError[E](string(data), err)
	}
	i.raw = raw
	return nil
}

// MarshalText encodes the raw value's textual form.
func (i ID[E, R]) MarshalText() ([]byte, error) {
	if m, ok := any(i.raw).(encoding.TextMarshaler); ok {
		return m.MarshalText()
	}
	return []byte(rawString(i.raw)), nil
}

// UnmarshalText decodes the raw value's textual form.
func (i *ID[E, R]) UnmarshalText(text []byte) error {
	raw, err := parseRaw[R](string(text))
	if err != nil {
		return formatError[E](string(text), err)
	}
	i.raw = raw
	return nil
}

// MarshalYAML encodes exactly the raw value.
func (i ID[E, R]) MarshalYAML() (any, error) {
	if m, ok := any(i.raw).(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}
	return i.raw, nil
}

// UnmarshalYAML decodes the raw value. null is rejected.
func (i *ID[E, R]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		return formatError[E](value.Value, errNull)
	}
	var raw R
	if _, ok := any(&raw).(encoding.TextUnmarshaler); ok && value.Kind == yaml.ScalarNode {
		parsed, err := parseRaw[R](value.Value)
		if err != nil {
			return formatError[E](value.Value, err)
		}
		i.raw = parsed
		return nil
	}
	if err := value.Decode(&raw); err != nil {
		return formatError[E](value.Value, err)
	}
	i.raw = raw
	return nil
}

// parseRaw decodes s into R using R's own text decoding when it has one,
// otherwise the string and integer kinds are supported.
func parseRaw[R comparable](s string) (R, error) {
	var raw R
	if u, ok := any(&raw).(encoding.TextUnmarshaler); ok {
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return raw, err
		}
		return raw, nil
	}

	rv := reflect.ValueOf(&raw).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return raw, err
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return raw, err
		}
		rv.SetUint(n)
	default:
		return raw, fmt.Errorf("unsupported raw type %s", rv.Type())
	}
	return raw, nil
}
