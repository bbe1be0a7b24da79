package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editFlags entryFlags

var editCmd = &cobra.Command{
	Use:   "edit ROW",
	Short: "Edit a directory entry",
	Long: `Replace the entry at ROW, as shown by 'phonebook list'. Fields not given on
the command line keep their current values. Requires the admin password.

Rows are positional: if someone else added or removed entries since you
listed them, ROW may now point at a different entry.

Examples:
  phonebook edit 3 --extension 702`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowIndex, err := parseRowIndex(args[0])
		if err != nil {
			return err
		}

		dir, cfg, err := loadDirectory(cmd)
		if err != nil {
			return err
		}

		current, ok := dir.Record(rowIndex)
		if !ok {
			return fmt.Errorf("no entry at row %d (directory has %d entries)", rowIndex, dir.Len())
		}

		if _, err := adminSession(cfg); err != nil {
			return err
		}

		entry := applyEntryFlags(cmd.Flags(), editFlags, current.Draft())

		if err := dir.Update(cmd.Context(), rowIndex, entry); err != nil {
			return err
		}

		fmt.Printf("Entry updated successfully: %s\n", describe(entry))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	addEntryFlags(editCmd.Flags(), &editFlags)
}
