// Package id binds raw identifier values to the entity type they identify.
//
// An ID[Order, string] and an ID[User, string] carry the same raw value type
// but are distinct Go types: they cannot be assigned to one another, compared
// with ==, or passed where the other is expected. The entity type parameter is
// a phantom marker and costs nothing at runtime.
//
//	type Order struct{}
//
//	func (Order) IDGenerator() id.Generator[ulid.ULID] { return orderIDs }
//
//	type OrderID = id.ID[Order, ulid.ULID]
//
//	oid, err := id.Next[Order, ulid.ULID]()
//	fmt.Println(oid) // Order::01HZY...
package id

import (
	"bytes"
	"cmp"
	"fmt"
	"reflect"
)

// ID is a raw value of type R tagged with the entity type E.
// The zero value wraps the zero raw value.
type ID[E any, R comparable] struct {
	_   [0]*E
	raw R
}

// FromRaw wraps a trusted raw value, e.g. one loaded from storage.
// The value is not validated against any generator format.
func FromRaw[E any, R comparable](raw R) ID[E, R] {
	return ID[E, R]{raw: raw}
}

// Relabel converts an identifier of one entity type into another entity type
// holding the same raw value. It is the only cross-entity conversion.
func Relabel[B any, E any, R comparable](i ID[E, R]) ID[B, R] {
	return ID[B, R]{raw: i.raw}
}

// Raw returns the underlying raw value.
func (i ID[E, R]) Raw() R {
	return i.raw
}

// IsZero reports whether the identifier wraps the zero raw value.
func (i ID[E, R]) IsZero() bool {
	var zero R
	return i.raw == zero
}

// Label returns the entity label of E.
func (i ID[E, R]) Label() string {
	return LabelOf[E]()
}

// Equal reports whether both identifiers hold the same raw value.
func (i ID[E, R]) Equal(other ID[E, R]) bool {
	return i.raw == other.raw
}

// Compare orders identifiers by their raw values and returns -1, 0 or +1.
func (i ID[E, R]) Compare(other ID[E, R]) int {
	return compareRaw(i.raw, other.raw)
}

// Less reports whether i sorts before other.
func (i ID[E, R]) Less(other ID[E, R]) bool {
	return i.Compare(other) < 0
}

// compareRaw delegates to the raw type's own ordering: ordered primitives,
// a Compare method (ulid.ULID), or byte arrays (uuid.UUID, ksuid.KSUID).
func compareRaw[R comparable](a, b R) int {
	switch x := any(a).(type) {
	case string:
		return cmp.Compare(x, any(b).(string))
	case int64:
		return cmp.Compare(x, any(b).(int64))
	case uint64:
		return cmp.Compare(x, any(b).(uint64))
	case int:
		return cmp.Compare(x, any(b).(int))
	case interface{ Compare(R) int }:
		return x.Compare(b)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.String:
		return cmp.Compare(va.String(), vb.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(va.Int(), vb.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(va.Uint(), vb.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(va.Float(), vb.Float())
	case reflect.Array:
		if va.Type().Elem().Kind() == reflect.Uint8 {
			return bytes.Compare(arrayBytes(va), arrayBytes(vb))
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func arrayBytes(v reflect.Value) []byte {
	out := make([]byte, v.Len())
	for i := range out {
		out[i] = byte(v.Index(i).Uint())
	}
	return out
}
