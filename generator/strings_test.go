package generator

import (
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCUID2Generator(t *testing.T) {
	_, err := NewCUID2Generator(1)
	assert.Error(t, err)
	_, err = NewCUID2Generator(33)
	assert.Error(t, err)

	g, err := NewCUID2Generator(DefaultCUID2Length)
	require.NoError(t, err)

	v, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, v, DefaultCUID2Length)

	res, err := g.Inspect(v)
	require.NoError(t, err)
	assert.Equal(t, int32(DefaultCUID2Length), res.IDLength)

	_, err = g.Inspect("short")
	assert.Error(t, err)
}

func TestCUID2Fingerprint(t *testing.T) {
	g, err := NewCUID2Generator(10, WithCUID2Fingerprint("replica-7"))
	require.NoError(t, err)

	v, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, v, 10)
	_, err = g.Inspect(v)
	assert.NoError(t, err)
}

func TestCUID2Unique(t *testing.T) {
	g, err := NewCUID2Generator(DefaultCUID2Length)
	require.NoError(t, err)

	assert.Equal(t, uniquenessCount, generateUnique[string](t, g, 1))
}

func TestCUID2UniqueConcurrent(t *testing.T) {
	g, err := NewCUID2Generator(DefaultCUID2Length)
	require.NoError(t, err)

	assert.Equal(t, uniquenessCount, generateUnique[string](t, g, 16))
}

func TestNanoIDGenerator(t *testing.T) {
	_, err := NewNanoIDGenerator(0, DefaultNanoIDAlphabet)
	assert.Error(t, err)
	_, err = NewNanoIDGenerator(21, "a")
	assert.Error(t, err)
	_, err = NewNanoIDGenerator(21, "abca")
	assert.Error(t, err, "repeated characters")
	_, err = NewNanoIDGenerator(257, DefaultNanoIDAlphabet)
	assert.Error(t, err)

	g, err := NewNanoIDGenerator(12, "abc123")
	require.NoError(t, err)

	v, err := g.Generate()
	require.NoError(t, err)
	assert.Regexp(t, `^[abc123]{12}$`, v)

	res, err := g.Inspect(v)
	require.NoError(t, err)
	assert.Equal(t, int32(12), res.IDLength)
	assert.Equal(t, "abc123", res.Alphabet)

	_, err = g.Inspect("abc123abc12z")
	assert.Error(t, err)
	_, err = g.Inspect("abc")
	assert.Error(t, err)
}

func TestNanoIDMultibyteAlphabet(t *testing.T) {
	g, err := NewNanoIDGenerator(8, "αβγδ")
	require.NoError(t, err)

	v, err := g.Generate()
	require.NoError(t, err)
	res, err := g.Inspect(v)
	require.NoError(t, err)
	assert.Equal(t, int32(8), res.IDLength)
}

func TestKSUIDGenerator(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	g := NewKSUIDGenerator(WithKSUIDClock(func() time.Time { return at }))

	v, stamped, err := g.GenerateAt()
	require.NoError(t, err)
	assert.Equal(t, at.UTC(), stamped)

	res, err := g.Inspect(v)
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), res.TimestampMs)
	assert.Len(t, res.RandomPayload, 32)

	_, err = g.Inspect(ksuid.Nil)
	assert.Error(t, err)

	seen := make(map[ksuid.KSUID]struct{}, 10_000)
	for i := 0; i < 10_000; i++ {
		v, err := g.Generate()
		require.NoError(t, err)
		seen[v] = struct{}{}
	}
	assert.Len(t, seen, 10_000)
}
