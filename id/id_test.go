package id_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"

	"github.com/weiawesome/typedid/id"
)

func TestIDTypesAreDistinctPerEntity(t *testing.T) {
	oid := id.FromRaw[Order]("shared")
	uid := id.FromRaw[User]("shared")

	assert.NotEqual(t, reflect.TypeOf(oid), reflect.TypeOf(uid))
	assert.Equal(t, oid.Raw(), uid.Raw())

	_, ok := any(oid).(UserID)
	assert.False(t, ok, "an order id must not be usable as a user id")
}

func TestIDIsZeroSizeOverhead(t *testing.T) {
	assert.Equal(t, reflect.TypeOf("").Size(), reflect.TypeOf(OrderID{}).Size())
	assert.Equal(t, reflect.TypeOf(uuid.UUID{}).Size(), reflect.TypeOf(SessionID{}).Size())
}

func TestFromRawAndRaw(t *testing.T) {
	u := uuid.MustParse("5f8e2c1a-9b3d-4e7f-8a6b-1c2d3e4f5a6b")
	sid := id.FromRaw[Session](u)

	assert.Equal(t, u, sid.Raw())
	assert.False(t, sid.IsZero())
	assert.True(t, SessionID{}.IsZero())
}

func TestEqualAndComparable(t *testing.T) {
	a := id.FromRaw[Order]("ord_1")
	b := id.FromRaw[Order]("ord_1")
	c := id.FromRaw[Order]("ord_2")

	assert.True(t, a == b)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	set := map[OrderID]struct{}{a: {}, b: {}, c: {}}
	assert.Len(t, set, 2)
}

func TestCompare(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		a, b := id.FromRaw[Order]("a"), id.FromRaw[Order]("b")
		assert.Equal(t, -1, a.Compare(b))
		assert.Equal(t, 1, b.Compare(a))
		assert.Equal(t, 0, a.Compare(a))
		assert.True(t, a.Less(b))
	})

	t.Run("int64", func(t *testing.T) {
		a, b := id.FromRaw[Ticket](int64(9)), id.FromRaw[Ticket](int64(10))
		assert.True(t, a.Less(b))
	})

	t.Run("uuid bytes", func(t *testing.T) {
		a := id.FromRaw[Session](uuid.MustParse("00000000-0000-4000-8000-000000000001"))
		b := id.FromRaw[Session](uuid.MustParse("00000000-0000-4000-8000-000000000002"))
		assert.Equal(t, -1, a.Compare(b))
	})

	t.Run("ulid compare method", func(t *testing.T) {
		a := id.FromRaw[Order](ulid.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
		b := id.FromRaw[Order](ulid.MustParse("01BX5ZZKBKACTAV9WEVGEMMVRZ"))
		assert.True(t, a.Less(b))
	})

	t.Run("sorts", func(t *testing.T) {
		ids := []TicketID{id.FromRaw[Ticket](int64(3)), id.FromRaw[Ticket](int64(1)), id.FromRaw[Ticket](int64(2))}
		slices.SortFunc(ids, TicketID.Compare)
		assert.Equal(t, []int64{1, 2, 3}, []int64{ids[0].Raw(), ids[1].Raw(), ids[2].Raw()})
	})
}

func TestRelabel(t *testing.T) {
	oid := id.FromRaw[Order]("ord_7")
	uid := id.Relabel[User](oid)

	assert.Equal(t, "ord_7", uid.Raw())
	assert.Equal(t, "User", uid.Label())
	assert.Equal(t, "User::ord_7", uid.String())
}
