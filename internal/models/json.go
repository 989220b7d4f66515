package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return marshalColumn(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	*a = JSONBStringArray{}
	return scanColumn(value, (*[]string)(a))
}

// Contains reports whether s is an element of the array
func (a JSONBStringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// UUIDList stores a list of user references as a JSON array of strings
type UUIDList []uuid.UUID

// Value implements the driver.Valuer interface
func (l UUIDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return marshalColumn(l)
}

// Scan implements the sql.Scanner interface
func (l *UUIDList) Scan(value interface{}) error {
	*l = UUIDList{}
	return scanColumn(value, (*[]uuid.UUID)(l))
}

// Contains reports whether id is in the list
func (l UUIDList) Contains(id uuid.UUID) bool {
	return l.index(id) >= 0
}

// Without returns a copy of the list with every occurrence of id removed
func (l UUIDList) Without(id uuid.UUID) UUIDList {
	out := make(UUIDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (l UUIDList) index(id uuid.UUID) int {
	for i, v := range l {
		if v == id {
			return i
		}
	}
	return -1
}

func marshalColumn(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanColumn(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
