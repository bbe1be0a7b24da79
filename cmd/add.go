package cmd

import (
	"fmt"

	"github.com/inovacc/phonebook/internal/model"
	"github.com/spf13/cobra"
)

var addFlags entryFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a directory entry",
	Long: `Add an entry to the directory. Requires the admin password, read from
PHONEBOOK_PASSWORD or prompted for.

Examples:
  phonebook add --location "A13" --extension 701 --name "John Doe"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, cfg, err := openDirectory(cmd)
		if err != nil {
			return err
		}

		if _, err := adminSession(cfg); err != nil {
			return err
		}

		entry := applyEntryFlags(cmd.Flags(), addFlags, model.Record{})

		if err := dir.Add(cmd.Context(), entry); err != nil {
			return err
		}

		fmt.Printf("Entry added successfully! The directory now has %d entries.\n", dir.Len())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addEntryFlags(addCmd.Flags(), &addFlags)
}
