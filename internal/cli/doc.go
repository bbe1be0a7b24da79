// Package cli provides the terminal user interface components for phonebook.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Directory: searchable card grid with admin login, entry form and
//     delete confirmation
//   - Configure: settings wizard with form navigation
//
// Remote calls never run inside Update. They are returned as commands and
// their results come back as messages, so the screen stays responsive while
// a request is in flight.
//
// # Styling
//
// Common styles are defined as package-level variables in styles.go.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
