package model

// Record is one credential entry. All fields are optional and default to
// empty. Records have no identity of their own; a record is addressed by its
// position in the store.
type Record struct {
	Username string
	Secret   string
	URL      string
	Notes    string
}

// Value returns the content of the given field, or "" for an unknown field.
func (r Record) Value(f Field) string {
	switch f {
	case FieldUsername:
		return r.Username
	case FieldSecret:
		return r.Secret
	case FieldURL:
		return r.URL
	case FieldNotes:
		return r.Notes
	default:
		return ""
	}
}

// Match is a search hit: the record together with the index it had in the
// store when the search ran.
type Match struct {
	Index  int
	Record Record
}
