package id_test

import (
	"database/sql/driver"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/typedid/id"
)

type Counter struct{}

type Event struct{}

type EventID = id.ID[Event, ksuid.KSUID]

func TestValue(t *testing.T) {
	tests := []struct {
		name  string
		value driver.Valuer
		want  driver.Value
	}{
		{name: "string", value: id.FromRaw[Order]("ord_1"), want: "ord_1"},
		{name: "int64", value: id.FromRaw[Ticket](int64(42)), want: int64(42)},
		{name: "uint32", value: id.FromRaw[Counter](uint32(7)), want: int64(7)},
		{name: "uuid", value: id.FromRaw[Session](uuid.MustParse(sessionRaw)), want: sessionRaw},
		{name: "zero ksuid", value: EventID{}, want: "000000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := id.FromRaw[Counter](uint64(math.MaxUint64)).Value()
	assert.Error(t, err)
}

func TestScanRoundTrip(t *testing.T) {
	t.Run("string from text column", func(t *testing.T) {
		var oid OrderID
		require.NoError(t, oid.Scan("ord_9"))
		assert.Equal(t, "ord_9", oid.Raw())

		require.NoError(t, oid.Scan([]byte("ord_10")))
		assert.Equal(t, "ord_10", oid.Raw())
	})

	t.Run("int64 from integer column", func(t *testing.T) {
		in := id.FromRaw[Ticket](int64(824227036833910784))
		v, err := in.Value()
		require.NoError(t, err)

		var out TicketID
		require.NoError(t, out.Scan(v))
		assert.Equal(t, in, out)

		require.NoError(t, out.Scan([]byte("12")))
		assert.Equal(t, int64(12), out.Raw())
	})

	t.Run("int64 column into string raw", func(t *testing.T) {
		var oid OrderID
		require.NoError(t, oid.Scan(int64(77)))
		assert.Equal(t, "77", oid.Raw())
	})

	t.Run("uuid delegates to its scanner", func(t *testing.T) {
		in := id.FromRaw[Session](uuid.MustParse(sessionRaw))
		v, err := in.Value()
		require.NoError(t, err)

		var out SessionID
		require.NoError(t, out.Scan(v))
		assert.Equal(t, in, out)
	})

	t.Run("ulid binary column", func(t *testing.T) {
		in := id.FromRaw[Order](ulid.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
		v, err := in.Value()
		require.NoError(t, err)

		var out id.ID[Order, ulid.ULID]
		require.NoError(t, out.Scan(v))
		assert.Equal(t, in, out)
	})

	t.Run("ksuid text column", func(t *testing.T) {
		for _, in := range []EventID{id.FromRaw[Event](ksuid.New()), {}} {
			v, err := in.Value()
			require.NoError(t, err)
			require.NotNil(t, v)

			var out EventID
			require.NoError(t, out.Scan(v))
			assert.Equal(t, in, out)
		}
	})
}

func TestScanRejects(t *testing.T) {
	var oid OrderID
	err := oid.Scan(nil)
	assert.ErrorIs(t, err, id.ErrFormat)

	var tid TicketID
	assert.ErrorIs(t, tid.Scan("twelve"), id.ErrFormat)
	assert.ErrorIs(t, tid.Scan(3.5), id.ErrFormat)

	var cid id.ID[Counter, uint8]
	assert.ErrorIs(t, cid.Scan(int64(300)), id.ErrFormat)
	assert.ErrorIs(t, cid.Scan(int64(-1)), id.ErrFormat)

	var sid SessionID
	assert.ErrorIs(t, sid.Scan("garbage"), id.ErrFormat)
	assert.ErrorIs(t, sid.Scan(""), id.ErrFormat)
	assert.ErrorIs(t, sid.Scan([]byte{}), id.ErrFormat)
	assert.True(t, sid.IsZero())

	var eid EventID
	assert.ErrorIs(t, eid.Scan(""), id.ErrFormat)
	assert.ErrorIs(t, eid.Scan([]byte{}), id.ErrFormat)
}
