package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/phonebook/internal/cli"
	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/store"
	"github.com/spf13/cobra"
)

var (
	showConfig  bool
	resetConfig bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure phonebook settings",
	Long: `Interactively configure phonebook settings such as the remote endpoint,
request timeout, admin passwords file and window title.

Environment variables (PHONEBOOK_ENDPOINT, PHONEBOOK_TIMEOUT, PHONEBOOK_TITLE)
and flags override saved settings; --show prints the effective result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showConfig {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			core.ShowConfig(os.Stdout, cfg)

			return nil
		}

		db, err := store.GetDB()
		if err != nil {
			return err
		}

		if resetConfig {
			cfg, err := core.ResetConfig(db)
			if err != nil {
				return err
			}

			fmt.Println("Configuration reset to defaults.")
			core.ShowConfig(os.Stdout, cfg)

			return nil
		}

		if err := db.Ping(); err != nil {
			return fmt.Errorf("settings store unavailable: %w", err)
		}

		if saved, err := db.HasConfig(); err == nil && !saved {
			fmt.Println("No configuration found, using defaults.")
		}

		fmt.Println("Starting interactive configuration...")

		m, err := cli.NewConfigureModel(db)
		if err != nil {
			return err
		}

		p := tea.NewProgram(m)

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		configModel := finalModel.(*cli.ConfigureModel)
		if configModel.Err != nil {
			return configModel.Err
		}

		if !configModel.Saved {
			fmt.Println("Cancelled.")
			return nil
		}

		saved, err := db.GetConfig()
		if err != nil {
			return err
		}

		fmt.Println("Configuration saved.")
		core.ShowConfig(os.Stdout, *saved)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&showConfig, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&resetConfig, "reset", "r", false, "Reset configuration to defaults")
}
