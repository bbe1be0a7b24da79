package web

import (
	"path/filepath"
	"testing"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupWorkbook(t *testing.T) (*Workbook, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "directory.xlsx")

	w, err := OpenWorkbook(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = w.Close()
	})

	return w, path
}

func TestOpenWorkbook_CreatesHeader(t *testing.T) {
	w, path := setupWorkbook(t)

	records, err := w.Records()
	require.NoError(t, err)
	assert.Empty(t, records)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, core.SheetHeader, rows[0])
}

func TestWorkbook_Changes(t *testing.T) {
	w, path := setupWorkbook(t)

	require.NoError(t, w.Append(model.Record{Location: "A1", Extension: "100", Username: "Alice"}))
	require.NoError(t, w.Append(model.Record{Location: "B2", Extension: "200", Username: "Bob"}))
	require.NoError(t, w.Append(model.Record{Location: "C3", Extension: "300", Username: "Cid"}))

	require.NoError(t, w.Update(1, model.Record{Location: "B9", Extension: "209", Username: "Bobby"}))
	require.NoError(t, w.Delete(0))

	expected := []model.Record{
		{Location: "B9", Extension: "209", Username: "Bobby", RowIndex: 0},
		{Location: "C3", Extension: "300", Username: "Cid", RowIndex: 1},
	}

	records, err := w.Records()
	require.NoError(t, err)
	assert.Equal(t, expected, records)

	// Changes were saved to disk
	require.NoError(t, w.Close())

	reopened, err := OpenWorkbook(path)
	require.NoError(t, err)

	defer func() {
		_ = reopened.Close()
	}()

	records, err = reopened.Records()
	require.NoError(t, err)
	assert.Equal(t, expected, records)
}

func TestWorkbook_OutOfRange(t *testing.T) {
	w, err := OpenWorkbook("")
	require.NoError(t, err)

	defer func() {
		_ = w.Close()
	}()

	require.NoError(t, w.Append(model.Record{Location: "A1", Extension: "100", Username: "Alice"}))

	tests := []struct {
		name string
		fn   func() error
	}{
		{name: "update past end", fn: func() error { return w.Update(1, model.Record{}) }},
		{name: "update negative", fn: func() error { return w.Update(-1, model.Record{}) }},
		{name: "delete past end", fn: func() error { return w.Delete(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), errRowOutOfRange)
		})
	}

	records, err := w.Records()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
