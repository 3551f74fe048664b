// Package dict holds the dictionary entry model, its SQLite-backed stores,
// and the two pure algorithms used to present entries: the fuzzy matcher
// (Search, Rank, Match) and the alphabetical grouper (GroupByLetter).
//
// The algorithms never mutate their input and keep no state between calls,
// so they are safe to call from any number of goroutines.
package dict

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when no entry or suggestion has the requested id.
var ErrNotFound = errors.New("not found")

// ErrAmbiguousID is returned when an id prefix matches more than one entry.
var ErrAmbiguousID = errors.New("ambiguous id prefix")

// ErrRequired is returned when a required text field is empty after trimming.
var ErrRequired = errors.New("primary and secondary text are required")

// Entry is a single word pair in the dictionary.
type Entry struct {
	ID        string    `json:"id"`
	Primary   string    `json:"primary"`
	Secondary string    `json:"secondary"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Field identifies one of the searchable text fields of an Entry.
type Field int

const (
	FieldPrimary Field = iota
	FieldSecondary
	FieldNotes
)

// String returns the field name as used in JSON and CLI output.
func (f Field) String() string {
	switch f {
	case FieldPrimary:
		return "primary"
	case FieldSecondary:
		return "secondary"
	case FieldNotes:
		return "notes"
	default:
		return "?"
	}
}

// MarshalText lets Field serialize as its name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a field name written by MarshalText.
func (f *Field) UnmarshalText(b []byte) error {
	for _, candidate := range searchFields {
		if candidate.String() == string(b) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", b)
}

// Value returns the text of field f.
func (e Entry) Value(f Field) string {
	switch f {
	case FieldPrimary:
		return e.Primary
	case FieldSecondary:
		return e.Secondary
	case FieldNotes:
		return e.Notes
	default:
		return ""
	}
}

// searchFields is the order fields are scored in; on equal scores the
// earlier field wins the Hit.Field attribution.
var searchFields = []Field{FieldPrimary, FieldSecondary, FieldNotes}

// normalizeText trims the three text fields and enforces the required ones.
func normalizeText(primary, secondary, notes string) (string, string, string, error) {
	primary = strings.TrimSpace(primary)
	secondary = strings.TrimSpace(secondary)
	notes = strings.TrimSpace(notes)
	if primary == "" || secondary == "" {
		return "", "", "", ErrRequired
	}
	return primary, secondary, notes, nil
}
