package id

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// GormDataType returns the GORM data type hint for the raw value.
func (i ID[E, R]) GormDataType() string {
	switch any(i.raw).(type) {
	case uuid.UUID:
		return "uuid"
	case ulid.ULID:
		return string(schema.Bytes)
	case ksuid.KSUID:
		return string(schema.String)
	}
	switch reflect.TypeOf((*R)(nil)).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return string(schema.Int)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return string(schema.Uint)
	case reflect.Array:
		return string(schema.Bytes)
	}
	return string(schema.String)
}

// GormDBDataType returns the dialect specific column type. An empty result
// lets GORM fall back to GormDataType.
func (i ID[E, R]) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	dialect := db.Dialector.Name()
	switch any(i.raw).(type) {
	case uuid.UUID:
		switch dialect {
		case "postgres":
			return "uuid"
		case "mysql":
			return "char(36)"
		case "sqlite":
			return "text"
		}
		return ""
	case ulid.ULID:
		switch dialect {
		case "postgres":
			return "bytea"
		case "mysql":
			return "binary(16)"
		case "sqlite":
			return "blob"
		}
		return ""
	case ksuid.KSUID:
		switch dialect {
		case "postgres", "mysql":
			return "char(27)"
		case "sqlite":
			return "text"
		}
		return ""
	}

	switch reflect.TypeOf((*R)(nil)).Elem().Kind() {
	case reflect.String:
		switch dialect {
		case "postgres", "sqlite":
			return "text"
		case "mysql":
			return "varchar(64)"
		}
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		switch dialect {
		case "postgres", "mysql":
			return "bigint"
		case "sqlite":
			return "integer"
		}
	}
	return ""
}
