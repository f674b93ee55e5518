package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringMap stores string key/values as a JSON object in a text column, which
// works the same on PostgreSQL and MySQL.
type StringMap map[string]string

// Scan implements the sql.Scanner interface for reading from the database.
func (m *StringMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return m.scanBytes(v)
	case string:
		return m.scanBytes([]byte(v))
	default:
		return fmt.Errorf("StringMap: unsupported scan type %T", value)
	}
}

func (m *StringMap) scanBytes(data []byte) error {
	if len(data) == 0 {
		*m = nil
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("StringMap: %w", err)
	}
	*m = out
	return nil
}

// Value implements the driver.Valuer interface. Empty maps are stored as NULL.
func (m StringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType returns the GORM data type hint.
func (StringMap) GormDataType() string {
	return "text"
}
