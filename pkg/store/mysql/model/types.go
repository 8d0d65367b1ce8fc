package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONRaw stores an opaque JSON document in a json column.
type JSONRaw json.RawMessage

// Value implements driver.Valuer
func (j JSONRaw) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner
func (j *JSONRaw) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONRaw(v)
	default:
		return fmt.Errorf("failed to scan JSONRaw: unsupported type %T", value)
	}
	return nil
}

// MarshalJSON passes the stored document through unchanged.
func (j JSONRaw) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the document verbatim.
func (j *JSONRaw) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}
