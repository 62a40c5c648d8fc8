package schema

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// FieldType identifies one of the supported candidate-data field kinds.
// The set is closed: the validator is exhaustive over these six values and
// rejects anything else.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
)

// Field describes one candidate-data field in a template schema.
// Options is only meaningful for select fields.
type Field struct {
	Key      string    `json:"key"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Label    string    `json:"label,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// FieldList is an ordered template schema, stored as a JSONB column.
// Vacancies hold a copy of their template's FieldList taken at creation time;
// later edits to the template never propagate to the vacancy.
type FieldList []Field

// Value implements driver.Valuer for JSONB storage
func (f FieldList) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal(FieldList{})
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB storage
func (f *FieldList) Scan(value interface{}) error {
	if value == nil {
		*f = FieldList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for FieldList column")
	}
	return json.Unmarshal(raw, f)
}
