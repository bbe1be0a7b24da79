package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/inovacc/phonebook/internal/encoding"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/xuri/excelize/v2"
)

// Format is an output format for listings and exports
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// SheetHeader is the header row of a directory workbook
var SheetHeader = []string{"Location", "Extension", "Username"}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))

	switch f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, json, yaml, csv or xlsx)", name)
	}
}

// FormatFromPath guesses the export format from a file extension, falling
// back to xlsx.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil || f == FormatTable {
		return FormatXLSX
	}

	return f
}

// WriteRecords renders records to w in the given format
func WriteRecords(w io.Writer, records []model.Record, format Format) error {
	if records == nil {
		records = []model.Record{}
	}

	switch format {
	case FormatTable, "":
		return writeTable(w, records)
	case FormatJSON:
		return encoding.WriteJSON(w, records)
	case FormatYAML:
		return encoding.WriteYAML(w, records)
	case FormatCSV:
		return writeCSV(w, records)
	case FormatXLSX:
		f, err := BuildWorkbook(records)
		if err != nil {
			return err
		}

		defer func() {
			_ = f.Close()
		}()

		return f.Write(w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeTable(w io.Writer, records []model.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ROW\tNAME\tEXTENSION\tLOCATION")
	_, _ = fmt.Fprintln(tw, "---\t----\t---------\t--------")

	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.RowIndex, r.Username, r.Extension, r.Location)
	}

	return tw.Flush()
}

func writeCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"RowIndex"}, SheetHeader...)); err != nil {
		return err
	}

	for _, r := range records {
		if err := cw.Write([]string{strconv.Itoa(r.RowIndex), r.Location, r.Extension, r.Username}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// BuildWorkbook creates a workbook whose first sheet holds the header row
// followed by one row per record.
func BuildWorkbook(records []model.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := WriteSheetRow(f, sheet, 1, SheetHeader); err != nil {
		_ = f.Close()
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "C1", style)
	}

	_ = f.SetColWidth(sheet, "A", "C", 24)

	for i, r := range records {
		if err := WriteSheetRow(f, sheet, i+2, []string{r.Location, r.Extension, r.Username}); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return f, nil
}

// WriteSheetRow writes values into row (1-based) starting at column A.
func WriteSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}

	return nil
}

// ExportRecords writes records to path. The parent directory is created when
// missing.
func ExportRecords(path string, records []model.Record, format Format) error {
	if format == FormatXLSX {
		f, err := BuildWorkbook(records)
		if err != nil {
			return err
		}

		defer func() {
			_ = f.Close()
		}()

		if err := encoding.EnsureParentDir(path); err != nil {
			return err
		}

		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("failed to save workbook %s: %w", path, err)
		}

		return nil
	}

	var b strings.Builder
	if err := WriteRecords(&b, records, format); err != nil {
		return err
	}

	return encoding.WriteFile(path, []byte(b.String()), 0o644)
}
