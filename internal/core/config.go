package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/inovacc/phonebook/internal/model"
)

const (
	EnvEndpoint = "PHONEBOOK_ENDPOINT"
	EnvTitle    = "PHONEBOOK_TITLE"
	EnvTimeout  = "PHONEBOOK_TIMEOUT"
)

// ConfigStore persists settings between runs
type ConfigStore interface {
	GetConfig() (*model.Config, error)
	SaveConfig(cfg *model.Config) error
}

// ConfigOverrides carries command-line values. Nil or empty fields leave the
// lower layers untouched.
type ConfigOverrides struct {
	Endpoint string
	Timeout  *int
}

// ResolveConfig layers settings: defaults, then the persisted store, then
// environment variables, then overrides. A nil store skips the persisted
// layer.
func ResolveConfig(store ConfigStore, overrides ConfigOverrides) (model.Config, error) {
	cfg := model.DefaultConfig()

	if store != nil {
		saved, err := store.GetConfig()
		if err != nil {
			return cfg, fmt.Errorf("failed to load settings: %w", err)
		}

		if saved != nil {
			mergeConfig(&cfg, *saved)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		cfg.Endpoint = v
	}

	if v := os.Getenv(EnvTitle); v != "" {
		cfg.Title = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be a non-negative number of seconds", EnvTimeout, v)
		}

		cfg.RequestTimeout = seconds
	}

	if overrides.Endpoint != "" {
		cfg.Endpoint = overrides.Endpoint
	}

	if overrides.Timeout != nil {
		if *overrides.Timeout < 0 {
			return cfg, fmt.Errorf("invalid timeout %d: must not be negative", *overrides.Timeout)
		}

		cfg.RequestTimeout = *overrides.Timeout
	}

	return cfg, nil
}

// mergeConfig copies the non-zero fields of saved onto cfg.
func mergeConfig(cfg *model.Config, saved model.Config) {
	if saved.Endpoint != "" {
		cfg.Endpoint = saved.Endpoint
	}

	if saved.RequestTimeout > 0 {
		cfg.RequestTimeout = saved.RequestTimeout
	}

	if saved.PasswordsFile != "" {
		cfg.PasswordsFile = saved.PasswordsFile
	}

	if saved.Title != "" {
		cfg.Title = saved.Title
	}
}

// NewDirectoryFromConfig builds a Directory talking to the configured
// endpoint.
func NewDirectoryFromConfig(cfg model.Config, logger *slog.Logger) (*Directory, error) {
	client, err := NewSheetClient(cfg.Endpoint, SheetClientOptions{
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return NewDirectory(client, DirectoryOptions{Logger: logger}), nil
}

// ShowConfig writes the effective configuration to w
func ShowConfig(w io.Writer, cfg model.Config) {
	timeout := "transport default"
	if cfg.RequestTimeout > 0 {
		timeout = fmt.Sprintf("%d seconds", cfg.RequestTimeout)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "(not set)"
	}

	_, _ = fmt.Fprintln(w, "Current Configuration:")
	_, _ = fmt.Fprintln(w, "=====================")
	_, _ = fmt.Fprintf(w, "Endpoint:        %s\n", endpoint)
	_, _ = fmt.Fprintf(w, "Request Timeout: %s\n", timeout)
	_, _ = fmt.Fprintf(w, "Passwords File:  %s\n", cfg.PasswordsFile)
	_, _ = fmt.Fprintf(w, "Title:           %s\n", cfg.Title)
}

// ResetConfig resets the persisted configuration to default values
func ResetConfig(store ConfigStore) (model.Config, error) {
	defaultCfg := model.DefaultConfig()

	if err := store.SaveConfig(&defaultCfg); err != nil {
		return defaultCfg, fmt.Errorf("failed to reset configuration: %w", err)
	}

	return defaultCfg, nil
}
