// Package pretty turns numeric identifiers such as snowflake IDs into
// human friendly strings like "ARPJ-27036-GVQS-07849" and back.
//
// The decimal form of the seed gets a Damm check digit, is split into groups
// of PartsSize digits, and every other group is re-encoded with an alphabet
// codec so that letters and digits alternate.
package pretty

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	DefaultPartsSize = 5
	DefaultDelimiter = "-"

	// maxSeedDigits is the decimal length of math.MaxInt64 plus check digit.
	maxSeedDigits = 20
)

var (
	// ErrInvalidID matches every string that is not a valid pretty id.
	ErrInvalidID = errors.New("not a valid pretty id")
	// ErrNegativeSeed is returned when prettifying a negative seed.
	ErrNegativeSeed = errors.New("pretty id seed must not be negative")
)

// Option configures a Prettifier.
type Option func(*Prettifier)

// WithCodec replaces the Base23 alphabet codec.
func WithCodec(c Codec) Option {
	return func(p *Prettifier) { p.codec = c }
}

// WithPartsSize sets the number of decimal digits per group.
func WithPartsSize(n int) Option {
	return func(p *Prettifier) { p.partsSize = n }
}

// WithDelimiter sets the group separator.
func WithDelimiter(d string) Option {
	return func(p *Prettifier) { p.delimiter = d }
}

// WithoutLeadingZeros disables padding of groups and of the group count.
func WithoutLeadingZeros() Option {
	return func(p *Prettifier) { p.leadingZeros = false }
}

// Prettifier converts int64 seeds to pretty ids. It is immutable and safe for
// concurrent use.
type Prettifier struct {
	codec         Codec
	partsSize     int
	delimiter     string
	leadingZeros  bool
	zeroChar      rune
	maxEncodedLen int
}

// New creates a Prettifier.
func New(opts ...Option) (*Prettifier, error) {
	p := &Prettifier{
		partsSize:    DefaultPartsSize,
		delimiter:    DefaultDelimiter,
		leadingZeros: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.codec == nil {
		codec, err := NewAlphabetCodec(Base23)
		if err != nil {
			return nil, err
		}
		p.codec = codec
	}
	if p.partsSize < 1 || p.partsSize > 18 {
		return nil, fmt.Errorf("parts size must be between 1 and 18, got %d", p.partsSize)
	}
	if p.delimiter == "" {
		return nil, errors.New("delimiter must not be empty")
	}

	p.zeroChar = []rune(p.codec.Encode(0))[0]
	p.maxEncodedLen = len([]rune(p.codec.Encode(pow10(p.partsSize) - 1)))
	return p, nil
}

var defaultPrettifier = sync.OnceValue(func() *Prettifier {
	p, err := New()
	if err != nil {
		panic(err)
	}
	return p
})

// Default returns the shared Base23 prettifier with 5-digit groups.
func Default() *Prettifier {
	return defaultPrettifier()
}

// Prettify renders seed as a pretty id.
func (p *Prettifier) Prettify(seed int64) (string, error) {
	if seed < 0 {
		return "", ErrNegativeSeed
	}
	parts := p.divide(dammEncode(strconv.FormatInt(seed, 10)))
	if p.leadingZeros {
		parts = p.padParts(parts)
	}
	return p.convertParts(parts), nil
}

// ToIDSeed recovers the seed of a pretty id, verifying its check digit.
func (p *Prettifier) ToIDSeed(pretty string) (int64, error) {
	digits, err := p.decodeWithCheckDigit(pretty)
	if err != nil {
		return 0, err
	}
	if len(digits) < 2 || !dammValid(digits) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, pretty)
	}
	seed, err := strconv.ParseInt(digits[:len(digits)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidID, pretty, err)
	}
	return seed, nil
}

// IsValid reports whether pretty decodes with a correct check digit.
func (p *Prettifier) IsValid(pretty string) bool {
	_, err := p.ToIDSeed(pretty)
	return err == nil
}

// divide splits rep into groups of partsSize digits counted from the right.
func (p *Prettifier) divide(rep string) []string {
	var parts []string
	for end := len(rep); end > 0; end -= p.partsSize {
		start := end - p.partsSize
		if start < 0 {
			start = 0
		}
		parts = append([]string{rep[start:end]}, parts...)
	}
	return parts
}

// padParts prepends "0" groups so every id has the same group count.
func (p *Prettifier) padParts(parts []string) []string {
	maxParts := (maxSeedDigits + p.partsSize - 1) / p.partsSize
	for len(parts) < maxParts {
		parts = append([]string{"0"}, parts...)
	}
	return parts
}

// convertParts alpha-encodes alternating groups so the last group always
// stays decimal.
func (p *Prettifier) convertParts(parts []string) string {
	encodeOdd := len(parts)%2 == 0
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		isOdd := i%2 != 0
		direct := isOdd
		if !encodeOdd {
			direct = !isOdd
		}

		if direct {
			if p.leadingZeros {
				part = padLeft(part, '0', p.partsSize)
			}
			out = append(out, part)
			continue
		}

		n, _ := strconv.ParseInt(part, 10, 64)
		encoded := p.codec.Encode(n)
		if p.leadingZeros {
			encoded = padLeft(encoded, p.zeroChar, p.maxEncodedLen)
		}
		out = append(out, encoded)
	}
	return strings.Join(out, p.delimiter)
}

func (p *Prettifier) decodeWithCheckDigit(pretty string) (string, error) {
	parts := strings.Split(pretty, p.delimiter)
	decodeEven := len(parts)%2 != 0

	var b strings.Builder
	for i, part := range parts {
		isEven := i%2 == 0
		keep := isEven
		if !decodeEven {
			keep = !isEven
		}

		if keep {
			if !allDigits(part) {
				return "", fmt.Errorf("%w: %q: group %q is not decimal", ErrInvalidID, pretty, part)
			}
			b.WriteString(part)
			continue
		}

		n, err := p.codec.Decode(part)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidID, pretty, err)
		}
		b.WriteString(padLeft(strconv.FormatInt(n, 10), '0', p.partsSize))
	}
	return b.String(), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pow10(n int) int64 {
	out := int64(1)
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}
