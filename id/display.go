package id

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// Delimiter separates the label from the raw value in the display form.
const Delimiter = "::"

// Join renders a label and a raw value the way ID.String does. An empty
// label yields the raw value alone.
func Join(label, raw string) string {
	if label == "" {
		return raw
	}
	return label + Delimiter + raw
}

// String renders "Label::raw" for diagnostics and logs. The result is not
// meant to be parsed back; parse the raw value instead.
func (i ID[E, R]) String() string {
	return Join(LabelOf[E](), rawString(i.raw))
}

// GoString renders the identifier for %#v.
func (i ID[E, R]) GoString() string {
	return fmt.Sprintf("id.ID[%s]{%#v}", LabelOf[E](), i.raw)
}

// MarshalZerologObject logs the identifier as {"label": ..., "id": ...}.
func (i ID[E, R]) MarshalZerologObject(e *zerolog.Event) {
	if label := LabelOf[E](); label != "" {
		e.Str("label", label)
	}
	e.Str("id", rawString(i.raw))
}

func rawString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	}
	return fmt.Sprint(raw)
}
