package model

import (
	"strings"
	"unicode/utf8"
)

// Record is one directory entry.
type Record struct {
	// Location is free text (desk, office, floor) and may be empty
	Location string `json:"location" yaml:"location"`

	// Extension is the phone extension; used as a dialable target
	Extension string `json:"extension" yaml:"extension"`

	// Username is the display name
	Username string `json:"username" yaml:"username"`

	// RowIndex is the record's position in the remote list at the time of
	// the last successful read. It is never sent by the remote store.
	RowIndex int `json:"rowIndex" yaml:"rowIndex"`
}

// Initial returns the upper-cased first letter of the username, or "?" when
// the username is empty.
func (r Record) Initial() string {
	name := strings.TrimSpace(r.Username)
	if name == "" {
		return "?"
	}

	first, _ := utf8.DecodeRuneInString(name)

	return strings.ToUpper(string(first))
}

// DialURI returns the tel: URI for the extension.
func (r Record) DialURI() string {
	return "tel:" + strings.TrimSpace(r.Extension)
}

// Draft returns a copy of the record without its positional index, suitable
// for seeding an edit form.
func (r Record) Draft() Record {
	return Record{
		Location:  r.Location,
		Extension: r.Extension,
		Username:  r.Username,
	}
}
