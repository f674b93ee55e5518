package generator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/typedid/id"
)

func TestParseClockPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockPolicy
		wantErr bool
	}{
		{in: "", want: ClockFail},
		{in: "fail", want: ClockFail},
		{in: " WAIT ", want: ClockWait},
		{in: "retry", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "fail", ClockFail.String())
	assert.Equal(t, "wait", ClockWait.String())
}

func TestClockRegressionError(t *testing.T) {
	err := error(&ClockRegressionError{Last: 10, Now: 5})
	assert.ErrorIs(t, err, ErrClockRegression)
	assert.Equal(t, "clock moved backwards: current=5, last=10", err.Error())
}

func TestBatch(t *testing.T) {
	out, err := Batch[string](id.GeneratorFunc[string](func() (string, error) { return "x", nil }), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x", "x"}, out)

	out, err = Batch[string](id.GeneratorFunc[string](func() (string, error) { return "x", nil }), 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Batch[string](id.GeneratorFunc[string](func() (string, error) { return "x", nil }), -1)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = Batch[string](id.GeneratorFunc[string](func() (string, error) { return "", boom }), 2)
	assert.ErrorIs(t, err, boom)
}

func TestWaitFor(t *testing.T) {
	clock := newFakeClock(time.UnixMilli(1_000))

	now, ok := waitFor(clock.Now, 1_000, 10*time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, int64(1_000), now)

	start := time.Now()
	now, ok = waitFor(clock.Now, 1_005, 5*time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, int64(1_000), now)
	assert.Less(t, time.Since(start), time.Second)

	go func() {
		time.Sleep(2 * time.Millisecond)
		clock.Set(time.UnixMilli(1_010))
	}()
	now, ok = waitFor(clock.Now, 1_005, time.Second)
	assert.True(t, ok)
	assert.Equal(t, int64(1_010), now)
}

// generateUnique draws uniquenessCount values from gen across workers
// goroutines and returns how many distinct values it saw.
func generateUnique[R comparable](t *testing.T, gen id.Generator[R], workers int) int {
	t.Helper()
	per := uniquenessCount / workers
	results := make([][]R, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]R, 0, per)
			for i := 0; i < per; i++ {
				v, err := gen.Generate()
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

	seen := make(map[R]struct{}, uniquenessCount)
	for _, out := range results {
		for _, v := range out {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
