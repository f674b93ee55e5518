package id

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/segmentio/ksuid"
)

var errEmpty = errors.New("empty column is not a valid id")

// Value implements the driver.Valuer interface for writing to the database.
// The stored value is the raw value's own column value; labels are never
// persisted. A zero KSUID is stored as its 27 character text form, not as
// NULL, so it survives a round trip.
func (i ID[E, R]) Value() (driver.Value, error) {
	if k, ok := any(i.raw).(ksuid.KSUID); ok {
		return k.String(), nil
	}
	if v, ok := any(i.raw).(driver.Valuer); ok {
		return v.Value()
	}

	rv := reflect.ValueOf(i.raw)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%s id %d overflows int64 column", LabelOf[E](), u)
		}
		return int64(u), nil
	}
	return nil, fmt.Errorf("unsupported raw type %T", i.raw)
}

// Scan implements the sql.Scanner interface for reading from the database.
// NULL is rejected rather than mapped to the zero identifier, and so is an
// empty column for raw types with their own scanner.
func (i *ID[E, R]) Scan(src any) error {
	if src == nil {
		return formatError[E]("NULL", errNull)
	}

	var raw R
	if s, ok := any(&raw).(sql.Scanner); ok {
		if isEmptyColumn(src) {
			return formatError[E]("", errEmpty)
		}
		if err := s.Scan(src); err != nil {
			return formatError[E](fmt.Sprint(src), err)
		}
		i.raw = raw
		return nil
	}

	var err error
	switch v := src.(type) {
	case string:
		raw, err = parseRaw[R](v)
	case []byte:
		raw, err = parseRaw[R](string(v))
	case int64:
		raw, err = scanInt[R](v)
	default:
		err = fmt.Errorf("unsupported scan type %T", src)
	}
	if err != nil {
		return formatError[E](fmt.Sprint(src), err)
	}
	i.raw = raw
	return nil
}

func isEmptyColumn(src any) bool {
	switch v := src.(type) {
	case string:
		return v == ""
	case []byte:
		return len(v) == 0
	}
	return false
}

func scanInt[R comparable](n int64) (R, error) {
	var raw R
	rv := reflect.ValueOf(&raw).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(n) {
			return raw, fmt.Errorf("%d overflows %s", n, rv.Type())
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || rv.OverflowUint(uint64(n)) {
			return raw, fmt.Errorf("%d overflows %s", n, rv.Type())
		}
		rv.SetUint(uint64(n))
	case reflect.String:
		rv.SetString(strconv.FormatInt(n, 10))
	default:
		return raw, errors.New("integer column cannot hold " + rv.Type().String())
	}
	return raw, nil
}
