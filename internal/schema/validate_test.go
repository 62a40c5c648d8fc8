package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error, kind ErrorKind, key string) {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Equal(t, kind, verr.Kind)
	assert.Equal(t, key, verr.Key)
}

func TestValidateEmptySchemaPassesAnything(t *testing.T) {
	record := map[string]interface{}{"anything": 123, "else": "value"}
	assert.NoError(t, Validate(record, nil))
	assert.NoError(t, Validate(record, FieldList{}))
}

func TestValidateRequiredField(t *testing.T) {
	fields := FieldList{{Key: "fullName", Type: FieldTypeText, Required: true}}

	tests := []struct {
		name   string
		record map[string]interface{}
	}{
		{"absent", map[string]interface{}{}},
		{"nil", map[string]interface{}{"fullName": nil}},
		{"empty string", map[string]interface{}{"fullName": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record, fields)
			requireValidationError(t, err, ErrMissingRequired, "fullName")
		})
	}

	assert.NoError(t, Validate(map[string]interface{}{"fullName": "Jane Doe"}, fields))
}

func TestValidateOptionalFieldMayBeAbsent(t *testing.T) {
	fields := FieldList{{Key: "notes", Type: FieldTypeTextarea, Required: false}}
	assert.NoError(t, Validate(map[string]interface{}{}, fields))
	assert.NoError(t, Validate(map[string]interface{}{"notes": ""}, fields))
}

func TestValidateStringNumberFails(t *testing.T) {
	// A numeric value sent as a string must be rejected.
	fields := FieldList{{Key: "age", Type: FieldTypeNumber, Required: true}}
	err := Validate(map[string]interface{}{"age": "30"}, fields)
	requireValidationError(t, err, ErrInvalidType, "age")

	assert.NoError(t, Validate(map[string]interface{}{"age": float64(30)}, fields))
	assert.NoError(t, Validate(map[string]interface{}{"age": 30}, fields))
}

func TestValidateSelectEnum(t *testing.T) {
	fields := FieldList{{Key: "level", Type: FieldTypeSelect, Required: true, Options: []string{"Jr", "Sr"}}}

	err := Validate(map[string]interface{}{"level": "Mid"}, fields)
	requireValidationError(t, err, ErrInvalidEnum, "level")

	assert.NoError(t, Validate(map[string]interface{}{"level": "Sr"}, fields))
}

func TestValidateSelectWithoutOptionsNeverPasses(t *testing.T) {
	fields := FieldList{{Key: "level", Type: FieldTypeSelect, Required: false}}
	err := Validate(map[string]interface{}{"level": "anything"}, fields)
	requireValidationError(t, err, ErrInvalidEnum, "level")
}

func TestValidateEmail(t *testing.T) {
	fields := FieldList{{Key: "email", Type: FieldTypeEmail, Required: true}}

	assert.NoError(t, Validate(map[string]interface{}{"email": "jane@example.com"}, fields))

	for _, bad := range []interface{}{"not-an-email", "a@b", "a b@c.com", 42} {
		err := Validate(map[string]interface{}{"email": bad}, fields)
		requireValidationError(t, err, ErrInvalidFormat, "email")
	}
}

func TestValidateDate(t *testing.T) {
	fields := FieldList{{Key: "availableFrom", Type: FieldTypeDate, Required: true}}

	assert.NoError(t, Validate(map[string]interface{}{"availableFrom": "2025-06-01"}, fields))
	assert.NoError(t, Validate(map[string]interface{}{"availableFrom": "2025-06-01T10:00:00Z"}, fields))
	assert.NoError(t, Validate(map[string]interface{}{"availableFrom": time.Now()}, fields))

	err := Validate(map[string]interface{}{"availableFrom": "next tuesday"}, fields)
	requireValidationError(t, err, ErrInvalidFormat, "availableFrom")
}

func TestValidateUnknownFieldType(t *testing.T) {
	fields := FieldList{{Key: "weird", Type: FieldType("checkbox"), Required: false}}
	err := Validate(map[string]interface{}{"weird": true}, fields)
	requireValidationError(t, err, ErrUnknownFieldType, "weird")
}

func TestValidateUnknownKeyRejected(t *testing.T) {
	fields := FieldList{{Key: "fullName", Type: FieldTypeText, Required: true}}
	err := Validate(map[string]interface{}{"fullName": "Jane", "extra": "nope"}, fields)
	requireValidationError(t, err, ErrUnknownField, "extra")
}

func TestValidateUnknownKeyReportedInSortedOrder(t *testing.T) {
	fields := FieldList{{Key: "fullName", Type: FieldTypeText, Required: false}}
	err := Validate(map[string]interface{}{"zebra": 1, "alpha": 2}, fields)
	requireValidationError(t, err, ErrUnknownField, "alpha")
}

func TestValidateFirstErrorInSchemaOrder(t *testing.T) {
	// Two failures exist; only the first in schema order is reported.
	fields := FieldList{
		{Key: "age", Type: FieldTypeNumber, Required: true},
		{Key: "level", Type: FieldTypeSelect, Required: true, Options: []string{"Jr", "Sr"}},
	}
	err := Validate(map[string]interface{}{"age": "oops", "level": "Mid"}, fields)
	requireValidationError(t, err, ErrInvalidType, "age")
}

func TestValidateRequiredCheckPrecedesUnknownKeys(t *testing.T) {
	fields := FieldList{{Key: "fullName", Type: FieldTypeText, Required: true}}
	err := Validate(map[string]interface{}{"extra": "x"}, fields)
	requireValidationError(t, err, ErrMissingRequired, "fullName")
}

func TestValidateRoundTripSampleRecord(t *testing.T) {
	// A record built by filling exactly the schema's fields with valid
	// values per type always validates.
	fields := FieldList{
		{Key: "fullName", Type: FieldTypeText, Required: true},
		{Key: "summary", Type: FieldTypeTextarea, Required: false},
		{Key: "email", Type: FieldTypeEmail, Required: true},
		{Key: "age", Type: FieldTypeNumber, Required: true},
		{Key: "availableFrom", Type: FieldTypeDate, Required: true},
		{Key: "level", Type: FieldTypeSelect, Required: true, Options: []string{"Jr", "Mid", "Sr"}},
	}
	record := map[string]interface{}{
		"fullName":      "Jane Doe",
		"summary":       "Ten years of experience",
		"email":         "jane@example.com",
		"age":           float64(34),
		"availableFrom": "2025-09-01",
		"level":         "Sr",
	}
	assert.NoError(t, Validate(record, fields))
}

func TestFieldListScanValueRoundTrip(t *testing.T) {
	fields := FieldList{
		{Key: "level", Type: FieldTypeSelect, Required: true, Label: "Seniority", Options: []string{"Jr", "Sr"}},
	}

	value, err := fields.Value()
	require.NoError(t, err)

	var decoded FieldList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, fields, decoded)
}
