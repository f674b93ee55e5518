package id_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/weiawesome/typedid/id"
)

func dialect(d gorm.Dialector) *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{Dialector: d}}
}

func TestGormDataType(t *testing.T) {
	assert.Equal(t, "uuid", SessionID{}.GormDataType())
	assert.Equal(t, "bytes", id.ID[Order, ulid.ULID]{}.GormDataType())
	assert.Equal(t, "int", TicketID{}.GormDataType())
	assert.Equal(t, "uint", id.ID[Counter, uint64]{}.GormDataType())
	assert.Equal(t, "string", OrderID{}.GormDataType())
	assert.Equal(t, "string", EventID{}.GormDataType())
}

func TestGormDBDataType(t *testing.T) {
	pg := dialect(postgres.New(postgres.Config{}))
	my := dialect(mysql.New(mysql.Config{}))

	tests := []struct {
		name     string
		dataType func(db *gorm.DB) string
		postgres string
		mysql    string
	}{
		{name: "uuid", dataType: func(db *gorm.DB) string { return SessionID{}.GormDBDataType(db, nil) }, postgres: "uuid", mysql: "char(36)"},
		{name: "ulid", dataType: func(db *gorm.DB) string { return id.ID[Order, ulid.ULID]{}.GormDBDataType(db, nil) }, postgres: "bytea", mysql: "binary(16)"},
		{name: "ksuid", dataType: func(db *gorm.DB) string { return EventID{}.GormDBDataType(db, nil) }, postgres: "char(27)", mysql: "char(27)"},
		{name: "string", dataType: func(db *gorm.DB) string { return OrderID{}.GormDBDataType(db, nil) }, postgres: "text", mysql: "varchar(64)"},
		{name: "int64", dataType: func(db *gorm.DB) string { return TicketID{}.GormDBDataType(db, nil) }, postgres: "bigint", mysql: "bigint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.postgres, tt.dataType(pg))
			assert.Equal(t, tt.mysql, tt.dataType(my))
		})
	}
}
