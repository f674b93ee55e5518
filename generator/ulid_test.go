package generator

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDMonotonicWithinMillisecond(t *testing.T) {
	clock := newFakeClock(time.UnixMilli(1_700_000_000_000))
	g := NewULIDGenerator(WithULIDClock(clock.Now))

	prev, at, err := g.GenerateAt()
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1_700_000_000_000).UTC(), at)

	for i := 0; i < 1_000; i++ {
		next, err := g.Generate()
		require.NoError(t, err)
		require.Equal(t, -1, prev.Compare(next))
		require.Equal(t, prev.Time(), next.Time())
		prev = next
	}
}

func TestULIDLexicographicOrder(t *testing.T) {
	g := NewULIDGenerator()

	prev, err := g.Generate()
	require.NoError(t, err)
	for i := 0; i < 10_000; i++ {
		next, err := g.Generate()
		require.NoError(t, err)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestULIDUniqueConcurrent(t *testing.T) {
	g := NewULIDGenerator()

	const workers = 16
	per := uniquenessCount / workers
	results := make([][]ulid.ULID, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]ulid.ULID, 0, per)
			for i := 0; i < per; i++ {
				v, err := g.Generate()
				if err != nil {
					t.Error(err)
					return
				}
				out = append(out, v)
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	seen := make(map[ulid.ULID]struct{}, uniquenessCount)
	for _, out := range results {
		for _, v := range out {
			seen[v] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*per)
}

func TestULIDClockRegression(t *testing.T) {
	clock := newFakeClock(time.UnixMilli(1_700_000_000_000))
	g := NewULIDGenerator(WithULIDClock(clock.Now))

	_, err := g.Generate()
	require.NoError(t, err)

	clock.Advance(-time.Millisecond)
	_, err = g.Generate()
	assert.ErrorIs(t, err, ErrClockRegression)
}

func TestULIDEntropyFailure(t *testing.T) {
	g := NewULIDGenerator(WithEntropy(bytes.NewReader(nil)))
	_, err := g.Generate()
	assert.Error(t, err)
}

func TestULIDInspect(t *testing.T) {
	clock := newFakeClock(time.UnixMilli(1_700_000_000_123))
	g := NewULIDGenerator(WithULIDClock(clock.Now))

	v, err := g.Generate()
	require.NoError(t, err)

	res, err := g.Inspect(v)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_123), res.TimestampMs)
	assert.Len(t, res.RandomPayload, 20)

	_, err = g.Inspect(ulid.ULID{})
	assert.Error(t, err)
}
