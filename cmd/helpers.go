package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/inovacc/phonebook/internal/application"
	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/inovacc/phonebook/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const debugLogFileName = "debug.log"

// setupLogger installs the default slog handler: text on w at warn level,
// debug level with --debug, JSON with --log-json.
func setupLogger(w io.Writer) {
	if debugFlag {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelWarn)
	}

	slog.SetDefault(newLogger(w, logJSONFlag))
}

func newLogger(w io.Writer, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel}

	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// redirectLogToFile sends logs to the debug log in the application
// directory. Without --debug logs are discarded instead.
func redirectLogToFile() (func(), error) {
	if !debugFlag {
		slog.SetDefault(newLogger(io.Discard, logJSONFlag))
		return func() {}, nil
	}

	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, debugLogFileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log %s: %w", path, err)
	}

	slog.SetDefault(newLogger(f, logJSONFlag))

	return func() {
		_ = f.Close()
	}, nil
}

// loadConfig resolves the effective settings for cmd. An unavailable
// settings store is logged and skipped so env and flags still work.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	overrides := core.ConfigOverrides{Endpoint: endpointFlag}

	if cmd.Flags().Changed("timeout") {
		overrides.Timeout = &timeoutFlag
	}

	var settings core.ConfigStore

	db, err := store.GetDB()
	if err != nil {
		slog.Warn("settings store unavailable", slog.String("error", err.Error()))
	} else {
		settings = db
	}

	return core.ResolveConfig(settings, overrides)
}

// openDirectory builds a directory client from the resolved settings.
func openDirectory(cmd *cobra.Command) (*core.Directory, model.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}

	dir, err := core.NewDirectoryFromConfig(cfg, slog.Default())
	if err != nil {
		return nil, cfg, err
	}

	return dir, cfg, nil
}

// loadDirectory opens the directory and performs the first read.
func loadDirectory(cmd *cobra.Command) (*core.Directory, model.Config, error) {
	dir, cfg, err := openDirectory(cmd)
	if err != nil {
		return nil, cfg, err
	}

	if err := dir.Read(cmd.Context()); err != nil {
		return nil, cfg, err
	}

	return dir, cfg, nil
}

// adminSession verifies the admin password for a non-interactive command.
func adminSession(cfg model.Config) (model.Session, error) {
	passwords, _, err := core.LoadAdminPasswords(cfg.PasswordsFile)
	if err != nil {
		return model.UserSession(), err
	}

	auth := core.NewAuthenticator(passwords)
	if !auth.Enabled() {
		return model.UserSession(), fmt.Errorf("%w: no admin passwords configured (set %s or the [admin] passwords key in %s)",
			core.ErrAdminRequired, core.EnvAdminPasswords, cfg.PasswordsFile)
	}

	password, err := core.AdminPassword()
	if err != nil {
		return model.UserSession(), err
	}

	session, err := auth.Login(password)
	if err != nil {
		return session, err
	}

	return session, core.RequireAdmin(session)
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this entry? [y/N]: ")
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// parseRowIndex parses a ROW argument.
func parseRowIndex(arg string) (int, error) {
	rowIndex, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid row %q: must be a number", arg)
	}

	if rowIndex < 0 {
		return 0, fmt.Errorf("invalid row %d: must not be negative", rowIndex)
	}

	return rowIndex, nil
}

// entryFlags holds the --location, --extension and --name values
type entryFlags struct {
	location  string
	extension string
	name      string
}

func addEntryFlags(fs *pflag.FlagSet, e *entryFlags) {
	fs.StringVar(&e.location, "location", "", "Location, e.g. A13 or Office")
	fs.StringVar(&e.extension, "extension", "", "Phone extension, e.g. 701")
	fs.StringVar(&e.name, "name", "", "Display name, e.g. John Doe")
}

// applyEntryFlags overlays the flags that were set on base.
func applyEntryFlags(fs *pflag.FlagSet, e entryFlags, base model.Record) model.Record {
	if fs.Changed("location") {
		base.Location = e.location
	}

	if fs.Changed("extension") {
		base.Extension = e.extension
	}

	if fs.Changed("name") {
		base.Username = e.name
	}

	return base
}

// describe renders a record for prompts and messages
func describe(r model.Record) string {
	return fmt.Sprintf("%s (ext. %s)", r.Username, r.Extension)
}
