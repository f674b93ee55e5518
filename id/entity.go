package id

import (
	"fmt"
	"time"
)

// Entity is implemented by domain types that mint their own identifiers.
// IDGenerator is called on the zero value and fixes the raw value type R of
// the entity's identifier: asking for an ID with any other raw type does not
// compile.
type Entity[R comparable] interface {
	IDGenerator() Generator[R]
}

// Next mints a new identifier for E using the generator E declares.
// It fails only when that generator fails.
func Next[E Entity[R], R comparable]() (ID[E, R], error) {
	var e E
	return NextFrom[E](e.IDGenerator())
}

// MustNext is like Next but panics on failure.
func MustNext[E Entity[R], R comparable]() ID[E, R] {
	i, err := Next[E, R]()
	if err != nil {
		panic(err)
	}
	return i
}

// NextN mints n identifiers for E. It stops at the first failure.
func NextN[E Entity[R], R comparable](n int) ([]ID[E, R], error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}
	var e E
	gen := e.IDGenerator()
	ids := make([]ID[E, R], 0, n)
	for i := 0; i < n; i++ {
		next, err := NextFrom[E](gen)
		if err != nil {
			return nil, err
		}
		ids = append(ids, next)
	}
	return ids, nil
}

// NextFrom mints an identifier for E from an explicit generator.
func NextFrom[E any, R comparable](gen Generator[R]) (ID[E, R], error) {
	if gen == nil {
		return ID[E, R]{}, generationError[E](ErrNoGenerator)
	}
	raw, err := gen.Generate()
	if err != nil {
		return ID[E, R]{}, generationError[E](err)
	}
	return FromRaw[E](raw), nil
}

// NextAt mints an identifier for E and reports its creation time in the same
// step. For a TimedGenerator the time is the one encoded in the raw value;
// otherwise it is read right after the generator returns.
func NextAt[E any, R comparable](gen Generator[R]) (ID[E, R], time.Time, error) {
	if gen == nil {
		return ID[E, R]{}, time.Time{}, generationError[E](ErrNoGenerator)
	}
	if tg, ok := gen.(TimedGenerator[R]); ok {
		raw, at, err := tg.GenerateAt()
		if err != nil {
			return ID[E, R]{}, time.Time{}, generationError[E](err)
		}
		return FromRaw[E](raw), at, nil
	}
	raw, err := gen.Generate()
	if err != nil {
		return ID[E, R]{}, time.Time{}, generationError[E](err)
	}
	return FromRaw[E](raw), time.Now(), nil
}
