package pretty

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Base23 is the default alphabet. It leaves out I, O and W.
const Base23 = "ABCDEFGHJKLMNPQRSTUVXYZ"

// Codec converts non-negative integers to and from a textual alphabet.
type Codec interface {
	Encode(n int64) string
	Decode(s string) (int64, error)
}

// AlphabetCodec is a positional codec whose digits are the alphabet's runes.
type AlphabetCodec struct {
	alphabet []rune
	index    map[rune]int64
}

// NewAlphabetCodec creates a codec. The alphabet needs at least 2 distinct
// runes.
func NewAlphabetCodec(alphabet string) (*AlphabetCodec, error) {
	runes := []rune(alphabet)
	if len(runes) < 2 {
		return nil, fmt.Errorf("alphabet must have at least 2 characters, got %d", len(runes))
	}
	index := make(map[rune]int64, len(runes))
	for i, r := range runes {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("alphabet repeats character '%c'", r)
		}
		index[r] = int64(i)
	}
	return &AlphabetCodec{alphabet: runes, index: index}, nil
}

func (c *AlphabetCodec) base() int64 { return int64(len(c.alphabet)) }

// Encode renders n. It panics if n is negative.
func (c *AlphabetCodec) Encode(n int64) string {
	if n < 0 {
		panic(fmt.Sprintf("pretty: cannot encode negative value %d", n))
	}
	var out []rune
	for {
		out = append(out, c.alphabet[n%c.base()])
		if n < c.base() {
			break
		}
		n /= c.base()
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Decode parses s. Characters outside the alphabet are an error.
func (c *AlphabetCodec) Decode(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("empty encoded value")
	}
	var n int64
	for _, r := range s {
		d, ok := c.index[r]
		if !ok {
			return 0, fmt.Errorf("character '%c' not in alphabet", r)
		}
		if n > (math.MaxInt64-d)/c.base() {
			return 0, fmt.Errorf("encoded value %q overflows int64", s)
		}
		n = n*c.base() + d
	}
	return n, nil
}

// padLeft pads s with pad up to size runes.
func padLeft(s string, pad rune, size int) string {
	n := size - len([]rune(s))
	if n <= 0 {
		return s
	}
	return strings.Repeat(string(pad), n) + s
}
