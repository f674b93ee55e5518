package id

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneration matches every failure to mint a new identifier.
	ErrGeneration = errors.New("id generation failed")
	// ErrFormat matches every failure to decode a raw value.
	ErrFormat = errors.New("malformed id")
	// ErrNoGenerator is returned when an entity declares a nil generator.
	ErrNoGenerator = errors.New("entity declares no id generator")
)

// GenerationError reports that the generator of an entity could not produce
// a raw value. Err is the generator's own error.
type GenerationError struct {
	Label string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("failed to generate id: %v", e.Err)
	}
	return fmt.Sprintf("failed to generate %s id: %v", e.Label, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

// FormatError reports that an external representation could not be decoded
// into the raw value type of an entity's identifier.
type FormatError struct {
	Label string
	Input string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("invalid id %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid %s id %q: %v", e.Label, e.Input, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func generationError[E any](err error) error {
	return &GenerationError{Label: LabelOf[E](), Err: err}
}

func formatError[E any](input string, err error) error {
	return &FormatError{Label: LabelOf[E](), Input: input, Err: err}
}
