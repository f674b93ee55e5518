package id_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/weiawesome/typedid/id"
)

const sessionRaw = "5f8e2c1a-9b3d-4e7f-8a6b-1c2d3e4f5a6b"

type invoice struct {
	Order   OrderID   `json:"order" yaml:"order"`
	Session SessionID `json:"session" yaml:"session"`
	Ticket  TicketID  `json:"ticket" yaml:"ticket"`
}

func sampleInvoice() invoice {
	return invoice{
		Order:   id.FromRaw[Order]("ord_000042"),
		Session: id.FromRaw[Session](uuid.MustParse(sessionRaw)),
		Ticket:  id.FromRaw[Ticket](int64(824227036833910784)),
	}
}

func TestJSONEncodesRawValueOnly(t *testing.T) {
	data, err := json.Marshal(sampleInvoice())
	require.NoError(t, err)
	assert.JSONEq(t, `{"order":"ord_000042","session":"`+sessionRaw+`","ticket":824227036833910784}`, string(data))
	assert.NotContains(t, string(data), "Order::")
}

func TestJSONRoundTrip(t *testing.T) {
	in := sampleInvoice()
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out invoice
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "null", data: `{"session":null}`},
		{name: "not a uuid", data: `{"session":"not-a-uuid"}`},
		{name: "wrong json type", data: `{"ticket":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out invoice
			err := json.Unmarshal([]byte(tt.data), &out)
			require.Error(t, err)
			assert.ErrorIs(t, err, id.ErrFormat)
		})
	}

	var sid SessionID
	err := sid.UnmarshalJSON([]byte("null"))
	var fe *id.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Session", fe.Label)
}

func TestTextRoundTrip(t *testing.T) {
	sid := id.FromRaw[Session](uuid.MustParse(sessionRaw))
	text, err := sid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, sessionRaw, string(text))

	var back SessionID
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, sid, back)

	tid := id.FromRaw[Ticket](int64(-7))
	text, err = tid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "-7", string(text))

	var tback TicketID
	require.NoError(t, tback.UnmarshalText(text))
	assert.Equal(t, tid, tback)

	assert.ErrorIs(t, tback.UnmarshalText([]byte("7x")), id.ErrFormat)
}

func TestTextAsMapKey(t *testing.T) {
	in := map[OrderID]int{id.FromRaw[Order]("a"): 1, id.FromRaw[Order]("b"): 2}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":2}`, string(data))

	var out map[OrderID]int
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestParse(t *testing.T) {
	sid, err := id.Parse[Session, uuid.UUID](sessionRaw)
	require.NoError(t, err)
	assert.Equal(t, sessionRaw, sid.Raw().String())

	u, err := id.Parse[Order, ulid.ULID]("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", u.Raw().String())

	_, err = id.Parse[Session, uuid.UUID]("Session::" + sessionRaw)
	assert.ErrorIs(t, err, id.ErrFormat, "display form is not parseable")

	assert.Panics(t, func() { id.MustParse[Ticket, int64]("nope") })
}

func TestYAMLRoundTrip(t *testing.T) {
	in := sampleInvoice()
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session: "+sessionRaw)
	assert.Contains(t, string(data), "order: ord_000042")
	assert.Contains(t, string(data), "ticket: 824227036833910784")

	var out invoice
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestYAMLRejectsMalformed(t *testing.T) {
	var out invoice
	err := yaml.Unmarshal([]byte("session: not-a-uuid\n"), &out)
	assert.ErrorIs(t, err, id.ErrFormat)

	var sid SessionID
	err = sid.UnmarshalYAML(&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
	assert.ErrorIs(t, err, id.ErrFormat)
}
