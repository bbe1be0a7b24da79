package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/spf13/cobra"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:     "remove ROW",
	Aliases: []string{"rm"},
	Short:   "Delete a directory entry",
	Long: `Delete the entry at ROW, as shown by 'phonebook list'. Later entries move
up one row. Requires the admin password and a confirmation unless --yes is
given.`,
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

		if _, ok := dir.Record(rowIndex); !ok {
			return fmt.Errorf("no entry at row %d (directory has %d entries)", rowIndex, dir.Len())
		}

		if _, err := adminSession(cfg); err != nil {
			return err
		}

		confirm := func(r model.Record) bool {
			if removeYes {
				return true
			}

			return promptConfirm(fmt.Sprintf("Delete %s from the directory? [y/N]: ", describe(r)))
		}

		err = dir.Delete(cmd.Context(), rowIndex, confirm)
		if errors.Is(err, core.ErrNotConfirmed) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err != nil {
			return err
		}

		fmt.Println("Entry deleted successfully!")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Delete without asking for confirmation")
}
