package id_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/typedid/id"
)

func TestString(t *testing.T) {
	sid := id.FromRaw[Session](uuid.MustParse("5f8e2c1a-9b3d-4e7f-8a6b-1c2d3e4f5a6b"))
	assert.Equal(t, "Session::5f8e2c1a-9b3d-4e7f-8a6b-1c2d3e4f5a6b", sid.String())
	assert.Equal(t, "Session::5f8e2c1a-9b3d-4e7f-8a6b-1c2d3e4f5a6b", fmt.Sprint(sid))

	assert.Equal(t, "Ticket::42", id.FromRaw[Ticket](int64(42)).String())
	assert.Equal(t, "LegacyAccount::a1", id.FromRaw[Account]("a1").String())
	assert.Equal(t, "raw-only", id.FromRaw[Anonymous]("raw-only").String())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "Order::ord_1", id.Join("Order", "ord_1"))
	assert.Equal(t, "ord_1", id.Join("", "ord_1"))
}

func TestGoString(t *testing.T) {
	assert.Equal(t, `id.ID[Order]{"ord_1"}`, fmt.Sprintf("%#v", id.FromRaw[Order]("ord_1")))
}

func TestZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().Object("order", id.FromRaw[Order]("ord_1")).Msg("")
	logger.Info().Object("anon", id.FromRaw[Anonymous]("x")).Msg("")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first struct {
		Order map[string]string `json:"order"`
	}
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, map[string]string{"label": "Order", "id": "ord_1"}, first.Order)

	var second struct {
		Anon map[string]string `json:"anon"`
	}
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, map[string]string{"id": "x"}, second.Anon)
}
