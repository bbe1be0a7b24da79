package cmd

import (
	"os"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/spf13/cobra"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:     "list [term]",
	Aliases: []string{"ls"},
	Short:   "List directory entries",
	Long: `Fetch the directory and print the entries whose name, extension or location
contains term (case-insensitive). Without a term every entry is printed.

Examples:
  phonebook list
  phonebook list smith
  phonebook list 70 -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := core.ParseFormat(listOutput)
		if err != nil {
			return err
		}

		dir, _, err := loadDirectory(cmd)
		if err != nil {
			return err
		}

		term := ""
		if len(args) > 0 {
			term = args[0]
		}

		return core.WriteRecords(os.Stdout, core.Filter(dir.Records(), term), format)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listOutput, "output", "o", string(core.FormatTable), "Output format: table, json, yaml or csv")
}
