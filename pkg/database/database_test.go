package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringMapValue(t *testing.T) {
	v, err := StringMap{"k": "v"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`, v)

	v, err = StringMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Equal(t, "text", StringMap{}.GormDataType())
}

func TestStringMapScan(t *testing.T) {
	var m StringMap
	require.NoError(t, m.Scan(`{"a":"1"}`))
	assert.Equal(t, StringMap{"a": "1"}, m)

	require.NoError(t, m.Scan([]byte(`{"b":"2"}`)))
	assert.Equal(t, StringMap{"b": "2"}, m)

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	assert.Error(t, m.Scan(`[1,2]`))
	assert.Error(t, m.Scan(42))
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&Config{Driver: "postgres", Host: "localhost", Port: 5432})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&Config{Driver: "mysql", Host: "localhost", Port: 3306})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = Dialector(&Config{Driver: "sqlite"})
	assert.Error(t, err)
}
