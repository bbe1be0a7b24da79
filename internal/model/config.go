package model

import (
	"time"

	"github.com/inovacc/phonebook/internal/application"
)

// DefaultTitle is the directory heading used when none is configured.
const DefaultTitle = "Company Directory"

// Config holds the application configuration
type Config struct {
	// Endpoint is the URL of the spreadsheet-backed remote store
	Endpoint string `json:"endpoint"`

	// RequestTimeout is the HTTP timeout in seconds; 0 keeps the transport default
	RequestTimeout int `json:"request_timeout"`

	// PasswordsFile is the ini file holding admin passwords
	PasswordsFile string `json:"passwords_file"`

	// Title is the heading shown above the directory
	Title string `json:"title"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Endpoint:       "",
		RequestTimeout: 0,
		PasswordsFile:  application.DefaultPasswordsFile(),
		Title:          DefaultTitle,
	}
}

// Timeout returns RequestTimeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 0
	}

	return time.Duration(c.RequestTimeout) * time.Second
}
