package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ErrorKind classifies a candidate-data validation failure.
type ErrorKind string

const (
	ErrMissingRequired  ErrorKind = "missing_required_field"
	ErrInvalidType      ErrorKind = "invalid_type"
	ErrInvalidFormat    ErrorKind = "invalid_format"
	ErrInvalidEnum      ErrorKind = "invalid_enum"
	ErrUnknownFieldType ErrorKind = "unknown_field_type"
	ErrUnknownField     ErrorKind = "unknown_field"
)

// ValidationError reports the first schema-conformance failure found in a
// candidate data record.
type ValidationError struct {
	Kind    ErrorKind
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Date strings are accepted in RFC3339 or plain date form.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// Validate checks a candidate data record against an ordered template schema.
//
// An empty schema imposes no constraints. Fields are checked in schema order:
// a required field must be present and non-empty, and any present value must
// match its field type. After the per-field pass, every key in the record must
// exist in the schema. Validation stops at the first failure; only one error
// is ever reported per call.
func Validate(record map[string]interface{}, fields FieldList) error {
	if len(fields) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field.Key] = struct{}{}
	}

	for _, field := range fields {
		value, ok := record[field.Key]
		missing := !ok || value == nil || value == ""

		if field.Required && missing {
			return &ValidationError{
				Kind:    ErrMissingRequired,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' is required", field.Key),
			}
		}

		if !missing {
			if err := validateFieldType(field, value); err != nil {
				return err
			}
		}
	}

	// Record keys are sorted so the single reported unknown-field error is
	// deterministic across runs.
	extra := make([]string, 0)
	for key := range record {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &ValidationError{
			Kind:    ErrUnknownField,
			Key:     extra[0],
			Message: fmt.Sprintf("Field '%s' is not defined in the schema", extra[0]),
		}
	}

	return nil
}

func validateFieldType(field Field, value interface{}) error {
	switch field.Type {
	case FieldTypeText, FieldTypeTextarea:
		if _, ok := value.(string); !ok {
			return &ValidationError{
				Kind:    ErrInvalidType,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' must be a string", field.Key),
			}
		}

	case FieldTypeEmail:
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			return &ValidationError{
				Kind:    ErrInvalidFormat,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' must be a valid email address", field.Key),
			}
		}

	case FieldTypeNumber:
		if !isNumber(value) {
			return &ValidationError{
				Kind:    ErrInvalidType,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' must be a number", field.Key),
			}
		}

	case FieldTypeDate:
		if !isDate(value) {
			return &ValidationError{
				Kind:    ErrInvalidFormat,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' must be a valid date", field.Key),
			}
		}

	case FieldTypeSelect:
		s, ok := value.(string)
		if !ok || !contains(field.Options, s) {
			return &ValidationError{
				Kind:    ErrInvalidEnum,
				Key:     field.Key,
				Message: fmt.Sprintf("Field '%s' must be one of: %s", field.Key, strings.Join(field.Options, ", ")),
			}
		}

	default:
		return &ValidationError{
			Kind:    ErrUnknownFieldType,
			Key:     field.Key,
			Message: fmt.Sprintf("Unknown field type '%s' for field '%s'", field.Type, field.Key),
		}
	}

	return nil
}

// isNumber accepts JSON numbers (float64) as well as Go integer and float
// values produced by in-process callers. NaN is rejected.
func isNumber(value interface{}) bool {
	switch v := value.(type) {
	case float64:
		return !math.IsNaN(v)
	case float32:
		return !math.IsNaN(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isDate(value interface{}) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
