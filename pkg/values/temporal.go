/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: temporal.go
Description: Date and datetime recognition for the Akaylee Mapper. Provides the
shared layout table used by schema inference and the date parsing detector, and
helpers for classifying values as date-only or datetime.
*/

package values

import (
	"strings"
	"time"
)

// DateLayouts are date-only layouts recognized by inference and detection.
// ISO first, then common regional forms.
var DateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// DateTimeLayouts are layouts carrying a time component.
var DateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	time.RFC1123,
}

// ParseDate parses a date-only string. Returns the instant at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseDateTime parses a string carrying both date and time components.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseTemporal parses a value as either a datetime or a date, in that
// order. Date-only values normalize to midnight UTC so that "2024-01-02"
// and "2024-01-02T00:00:00Z" denote the same instant.
func ParseTemporal(v Value) (time.Time, bool) {
	if v.Kind() != KindString {
		return time.Time{}, false
	}
	if t, ok := ParseDateTime(v.StringVal()); ok {
		return t, true
	}
	return ParseDate(v.StringVal())
}

// IsDateOnly reports whether the string parses as a date with no time part.
func IsDateOnly(s string) bool {
	if _, ok := ParseDateTime(s); ok {
		return false
	}
	_, ok := ParseDate(s)
	return ok
}

// IsDateTime reports whether the string parses with a time component.
func IsDateTime(s string) bool {
	_, ok := ParseDateTime(s)
	return ok
}
