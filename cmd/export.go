package cmd

import (
	"fmt"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/spf13/cobra"
)

var (
	exportFile   string
	exportFormat string
	exportSearch string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the directory to a file",
	Long: `Fetch the directory and write it to a file. The format defaults to the file
extension (.xlsx, .csv, .json, .yaml) and falls back to xlsx.

Examples:
  phonebook export -f directory.xlsx
  phonebook export -f office.csv --search office`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := core.FormatFromPath(exportFile)

		if exportFormat != "" {
			f, err := core.ParseFormat(exportFormat)
			if err != nil {
				return err
			}

			if f == core.FormatTable {
				return fmt.Errorf("table output is only available for 'phonebook list'")
			}

			format = f
		}

		dir, _, err := loadDirectory(cmd)
		if err != nil {
			return err
		}

		records := core.Filter(dir.Records(), exportSearch)

		if err := core.ExportRecords(exportFile, records, format); err != nil {
			return err
		}

		fmt.Printf("Exported %d of %d entries to %s\n", len(records), dir.Len(), exportFile)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFile, "output-file", "f", "", "File to write")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: xlsx, csv, json or yaml")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Only export entries matching this term")
	_ = exportCmd.MarkFlagRequired("output-file")
}
