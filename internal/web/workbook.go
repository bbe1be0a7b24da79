package web

import (
	"errors"
	"fmt"
	"sync"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/encoding"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/xuri/excelize/v2"
)

// headerRows is the number of rows above the first record
const headerRows = 1

var errRowOutOfRange = errors.New("row index out of range")

// Workbook is a directory kept in the first sheet of an xlsx file. Record i
// lives in sheet row i+2, below the header row. Every change is saved to
// disk immediately; a workbook without a path lives in memory only.
type Workbook struct {
	mu    sync.Mutex
	file  *excelize.File
	sheet string
	path  string
}

// OpenWorkbook opens the workbook at path, creating it with a header row
// when it does not exist yet.
func OpenWorkbook(path string) (*Workbook, error) {
	if path != "" && encoding.FileExists(path) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}

		sheet := f.GetSheetName(0)
		if sheet == "" {
			_ = f.Close()
			return nil, fmt.Errorf("workbook %s has no worksheet", path)
		}

		return &Workbook{file: f, sheet: sheet, path: path}, nil
	}

	f, err := core.BuildWorkbook(nil)
	if err != nil {
		return nil, err
	}

	w := &Workbook{file: f, sheet: f.GetSheetName(0), path: path}

	if err := w.save(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return w, nil
}

// Path returns the file backing the workbook, empty when in memory.
func (w *Workbook) Path() string {
	return w.path
}

// Records returns every record below the header row.
func (w *Workbook) Records() ([]model.Record, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.rows()
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, len(rows))
	for i, row := range rows {
		records[i] = model.Record{
			Location:  cell(row, 0),
			Extension: cell(row, 1),
			Username:  cell(row, 2),
			RowIndex:  i,
		}
	}

	return records, nil
}

// Append adds rec after the last record.
func (w *Workbook) Append(rec model.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.rows()
	if err != nil {
		return err
	}

	if err := core.WriteSheetRow(w.file, w.sheet, len(rows)+headerRows+1, recordCells(rec)); err != nil {
		return err
	}

	return w.save()
}

// Update overwrites the record at rowIndex.
func (w *Workbook) Update(rowIndex int, rec model.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkIndex(rowIndex); err != nil {
		return err
	}

	if err := core.WriteSheetRow(w.file, w.sheet, rowIndex+headerRows+1, recordCells(rec)); err != nil {
		return err
	}

	return w.save()
}

// Delete removes the record at rowIndex; later records move up one row.
func (w *Workbook) Delete(rowIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkIndex(rowIndex); err != nil {
		return err
	}

	if err := w.file.RemoveRow(w.sheet, rowIndex+headerRows+1); err != nil {
		return fmt.Errorf("failed to remove row %d: %w", rowIndex, err)
	}

	return w.save()
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

func (w *Workbook) checkIndex(rowIndex int) error {
	rows, err := w.rows()
	if err != nil {
		return err
	}

	if rowIndex < 0 || rowIndex >= len(rows) {
		return fmt.Errorf("%w: %d (have %d rows)", errRowOutOfRange, rowIndex, len(rows))
	}

	return nil
}

// rows returns the data rows, without the header.
func (w *Workbook) rows() ([][]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", w.sheet, err)
	}

	if len(rows) <= headerRows {
		return nil, nil
	}

	return rows[headerRows:], nil
}

func (w *Workbook) save() error {
	if w.path == "" {
		return nil
	}

	if err := encoding.EnsureParentDir(w.path); err != nil {
		return err
	}

	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}

	return nil
}

func recordCells(rec model.Record) []string {
	return []string{rec.Location, rec.Extension, rec.Username}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return row[idx]
}
