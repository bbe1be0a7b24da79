// Package model defines the data structures used throughout phonebook.
//
// These are plain values shared by the directory client, the terminal UI,
// the settings store and the sheet server. They carry no behavior beyond
// small helpers.
//
// # Record
//
// The [Record] struct is one directory entry plus its transient position in
// the most recently fetched list:
//
//	type Record struct {
//	    Location  string // Free text, may be empty
//	    Extension string // Phone extension, required
//	    Username  string // Display name, required
//	    RowIndex  int    // Zero-based position at the last read
//	}
//
// RowIndex is not a stable identifier. It is recomputed on every read and is
// only valid until the next mutation.
//
// # Config
//
// The [Config] struct holds persisted settings (remote endpoint, request
// timeout, admin password file, heading).
//
// # Session
//
// The [Session] struct carries the caller's role. It is created by the
// authenticator in core and passed down explicitly; admin status is a
// client-side flag and grants nothing the remote store checks.
package model
