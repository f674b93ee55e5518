package id

import (
	"reflect"
	"strings"
	"sync"
)

// Labeler lets an entity type pin its label instead of deriving it from the
// type name, so renaming the type does not change stored or logged labels.
// Label is called on the zero value and must not depend on instance state.
// Returning "" marks the entity as unlabeled.
type Labeler interface {
	Label() string
}

// maxUnwrap bounds how many pointer/container layers are peeled off when
// looking for a named type.
const maxUnwrap = 8

// labels caches resolved labels by entity type.
var labels sync.Map // reflect.Type -> string

// LabelOf returns the label of entity type E. It is computed once per type
// and constant for the lifetime of the process.
func LabelOf[E any]() string {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if v, ok := labels.Load(t); ok {
		return v.(string)
	}
	v, _ := labels.LoadOrStore(t, resolveLabel(t))
	return v.(string)
}

func resolveLabel(t reflect.Type) string {
	if l, ok := labelerOf(t); ok {
		return l.Label()
	}
	return typeName(t)
}

// labelerOf probes a non-nil zero value of t for a Labeler override.
func labelerOf(t reflect.Type) (Labeler, bool) {
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	// *T carries both value and pointer receiver methods of T.
	probe := reflect.New(t)
	if t.Kind() == reflect.Pointer {
		probe = reflect.New(t.Elem())
	}
	l, ok := probe.Interface().(Labeler)
	return l, ok
}

// typeName returns the short, unqualified name of the nearest named type
// with any generic instantiation removed: "*[]orders.Order" -> "Order",
// "Box[int]" -> "Box".
func typeName(t reflect.Type) string {
	for i := 0; i < maxUnwrap && t.Name() == ""; i++ {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			t = t.Elem()
		default:
			return t.String()
		}
	}
	if t.Name() == "" {
		return t.String()
	}
	return stripTypeParams(t.Name())
}

func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
