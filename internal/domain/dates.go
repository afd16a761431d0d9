package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// ParseRequiredDate parses a required YYYY-MM-DD date with field-aware errors.
func ParseRequiredDate(value, field string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)
	}
	return t, nil
}

// ParseRequiredDateTime parses a required "YYYY-MM-DD HH:MM" timestamp with
// field-aware errors.
func ParseRequiredDateTime(value, field string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid datetime format %q (expected YYYY-MM-DD HH:MM)", field, value)
	}
	return t, nil
}

// ParseOptionalDateTime parses an optional "YYYY-MM-DD HH:MM" timestamp.
func ParseOptionalDateTime(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseRequiredDateTime(*value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
