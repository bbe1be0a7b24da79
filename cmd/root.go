package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/phonebook/internal/application"
	"github.com/inovacc/phonebook/internal/cli"
	"github.com/inovacc/phonebook/internal/core"
	"github.com/spf13/cobra"
)

var (
	endpointFlag string
	timeoutFlag  int
	debugFlag    bool
	logJSONFlag  bool

	// logLevel is shared by every handler so commands can raise verbosity
	logLevel = new(slog.LevelVar)
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A company phone directory",
	Long: `Phonebook is a command-line client for a company phone directory kept in a
spreadsheet behind a web endpoint. Run it without arguments to browse and
search the directory interactively; admins can add, edit and delete entries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(os.Stderr)
		return nil
	},
	RunE: runBrowser,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Remote store URL (overrides settings and "+core.EnvEndpoint+")")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Request timeout in seconds, 0 for the transport default")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "Write logs as JSON")
}

func runBrowser(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Logs on stderr would tear the screen while the UI is up
	closeLog, err := redirectLogToFile()
	if err != nil {
		return err
	}
	defer closeLog()

	dir, err := core.NewDirectoryFromConfig(cfg, slog.Default())
	if err != nil {
		return err
	}

	passwords, source, err := core.LoadAdminPasswords(cfg.PasswordsFile)
	if err != nil {
		return err
	}

	slog.Debug("admin passwords loaded", slog.String("source", string(source)), slog.Int("count", len(passwords)))

	m := cli.NewDirectoryModel(dir, core.NewAuthenticator(passwords), cli.DirectoryModelOptions{
		Title:   cfg.Title,
		Context: cmd.Context(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}

		return fmt.Errorf("directory browser failed: %w", err)
	}

	return nil
}
