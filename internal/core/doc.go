// Package core provides the business logic layer for phonebook.
//
// This package contains all directory functionality separated from UI
// concerns. Functions in this package handle validation, talking to the
// remote store, filtering and rendering of records.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - All remote access goes through a [RemoteStore]
//   - UI-specific logic belongs in the cli package, not here
//
// # Directory
//
// A [Directory] keeps a local mirror of the remote list. Reads replace the
// mirror wholesale. Changes are validated locally, submitted, and on success
// followed by a full read:
//
//  1. [Directory.Add], [Directory.Update] or [Directory.Delete] submits the change
//  2. [Directory.Read] resynchronizes the mirror
//
// Only one change may be in flight at a time.
//
// # Errors
//
// Failures are reported as [ValidationError], [FetchError], [MutationError]
// or [TransportError], each matching a sentinel through errors.Is.
package core
