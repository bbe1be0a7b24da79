package core

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inovacc/phonebook/internal/model"
	"golang.org/x/term"
	"gopkg.in/ini.v1"
)

const (
	// EnvAdminPasswords holds a comma-separated list of admin passwords
	EnvAdminPasswords = "PHONEBOOK_ADMIN_PASSWORDS"

	// EnvPassword supplies the admin password to non-interactive commands
	EnvPassword = "PHONEBOOK_PASSWORD"
)

// PasswordSource indicates where the admin passwords were found
type PasswordSource string

const (
	PasswordSourceEnv  PasswordSource = "env"
	PasswordSourceFile PasswordSource = "file"
	PasswordSourceNone PasswordSource = "none"
)

// Authenticator verifies admin passwords. Admin status is purely a client
// side gate; the remote endpoint is the real trust boundary.
type Authenticator struct {
	passwords []string
}

// NewAuthenticator creates an authenticator accepting any of passwords.
// Empty entries are ignored.
func NewAuthenticator(passwords []string) *Authenticator {
	kept := make([]string, 0, len(passwords))

	for _, p := range passwords {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return &Authenticator{passwords: kept}
}

// Enabled reports whether at least one admin password is configured.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.passwords) > 0
}

// Verify reports whether input matches a configured password exactly.
func (a *Authenticator) Verify(input string) bool {
	if a == nil || input == "" {
		return false
	}

	matched := 0
	for _, p := range a.passwords {
		matched |= subtle.ConstantTimeCompare([]byte(p), []byte(input))
	}

	return matched == 1
}

// Login returns an admin session when input is a configured password.
func (a *Authenticator) Login(input string) (model.Session, error) {
	if !a.Verify(input) {
		return model.UserSession(), ErrInvalidPassword
	}

	return model.Session{Role: model.RoleAdmin, Since: time.Now()}, nil
}

// RequireAdmin returns ErrAdminRequired unless session is an admin session.
func RequireAdmin(session model.Session) error {
	if !session.IsAdmin() {
		return ErrAdminRequired
	}

	return nil
}

// SplitPasswords splits a comma-separated list verbatim, dropping empty
// entries. Surrounding whitespace is part of the password.
func SplitPasswords(raw string) []string {
	var out []string

	for _, p := range strings.Split(raw, ",") {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

// LoadAdminPasswords resolves admin passwords.
// Priority order:
//  1. PHONEBOOK_ADMIN_PASSWORDS environment variable
//  2. passwords key of the [admin] section in the ini file at path
//
// A missing ini file is not an error; it yields no passwords.
func LoadAdminPasswords(path string) ([]string, PasswordSource, error) {
	if raw, ok := os.LookupEnv(EnvAdminPasswords); ok {
		return SplitPasswords(raw), PasswordSourceEnv, nil
	}

	if path == "" {
		return nil, PasswordSourceNone, nil
	}

	// '#' and ';' are valid password characters and quotes are kept as typed
	cfg, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, path)
	if err != nil {
		return nil, PasswordSourceNone, fmt.Errorf("failed to load passwords file %s: %w", path, err)
	}

	sec := cfg.Section("admin")
	if !sec.HasKey("passwords") {
		return nil, PasswordSourceNone, nil
	}

	return SplitPasswords(sec.Key("passwords").String()), PasswordSourceFile, nil
}

// AdminPassword returns the password for a non-interactive command, taken
// from PHONEBOOK_PASSWORD or prompted for on the terminal.
func AdminPassword() (string, error) {
	if password := os.Getenv(EnvPassword); password != "" {
		return password, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("%w: set %s or run from a terminal", ErrAdminRequired, EnvPassword)
	}

	return PromptForPassword("Admin password: ")
}

// PromptForPassword prompts the user for a password without echoing
func PromptForPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}
