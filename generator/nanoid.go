package generator

import (
	"fmt"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	maxNanoIDSize     = 256
	maxNanoIDAlphabet = 255
)

// NanoIDGenerator draws fixed-size random strings from an alphabet.
type NanoIDGenerator struct {
	size     int
	alphabet string
	allowed  map[rune]struct{}
}

// NewNanoIDGenerator checks that size is in [1, 256] and that alphabet has
// between 2 and 255 distinct characters.
func NewNanoIDGenerator(size int, alphabet string) (*NanoIDGenerator, error) {
	if size < 1 || size > maxNanoIDSize {
		return nil, fmt.Errorf("nanoid size must be between 1 and %d, got %d", maxNanoIDSize, size)
	}

	allowed := make(map[rune]struct{}, len(alphabet))
	for _, r := range alphabet {
		if _, dup := allowed[r]; dup {
			return nil, fmt.Errorf("nanoid alphabet repeats character '%c'", r)
		}
		allowed[r] = struct{}{}
	}
	if n := len(allowed); n < 2 || n > maxNanoIDAlphabet {
		return nil, fmt.Errorf("nanoid alphabet must have between 2 and %d characters, got %d", maxNanoIDAlphabet, n)
	}

	return &NanoIDGenerator{size: size, alphabet: alphabet, allowed: allowed}, nil
}

func (g *NanoIDGenerator) Generate() (string, error) {
	id, err := gonanoid.Generate(g.alphabet, g.size)
	if err != nil {
		return "", fmt.Errorf("failed to generate NanoID: %w", err)
	}
	return id, nil
}

// Inspect checks length and alphabet. Length counts characters, not bytes.
func (g *NanoIDGenerator) Inspect(id string) (*ParseResult, error) {
	if n := utf8.RuneCountInString(id); n != g.size {
		return nil, fmt.Errorf("invalid NanoID: expected length %d, got %d", g.size, n)
	}
	for _, c := range id {
		if _, ok := g.allowed[c]; !ok {
			return nil, fmt.Errorf("invalid NanoID: character '%c' not in alphabet", c)
		}
	}
	return &ParseResult{IDLength: int32(g.size), Alphabet: g.alphabet}, nil
}
