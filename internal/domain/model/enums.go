package model

import "strings"

// Field selects one of the searchable record fields.
type Field string

const (
	FieldUsername Field = "username"
	FieldSecret   Field = "secret"
	FieldURL      Field = "url"
	FieldNotes    Field = "notes"
)

// Fields lists every searchable field in display order.
var Fields = []Field{FieldUsername, FieldSecret, FieldURL, FieldNotes}

// ParseField resolves a user-supplied field name. Matching is case-insensitive
// and "password" is accepted as an alias for FieldSecret.
func ParseField(name string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "username", "user":
		return FieldUsername, true
	case "secret", "password":
		return FieldSecret, true
	case "url":
		return FieldURL, true
	case "notes", "note":
		return FieldNotes, true
	default:
		return "", false
	}
}

// Valid reports whether f is one of the known fields.
func (f Field) Valid() bool {
	switch f {
	case FieldUsername, FieldSecret, FieldURL, FieldNotes:
		return true
	default:
		return false
	}
}
