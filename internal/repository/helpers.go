package repository

import (
	"database/sql"
	"strings"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. Returns nil for NULL, empty, or unparseable values.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a SQLite-storable value,
// nil pointer becoming SQL NULL.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableFloatToValue converts a *float64 to a SQLite-storable value.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// joinParticipants flattens a participant list for storage.
func joinParticipants(ps []string) string {
	return strings.Join(ps, ",")
}

// splitParticipants restores a participant list from storage.
func splitParticipants(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
