package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/phonebook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "table", expected: FormatTable},
		{input: "JSON", expected: FormatJSON},
		{input: "yml", expected: FormatYAML},
		{input: " csv ", expected: FormatCSV},
		{input: "xlsx", expected: FormatXLSX},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out/dir.json": FormatJSON,
		"dir.yaml":     FormatYAML,
		"dir.csv":      FormatCSV,
		"dir.xlsx":     FormatXLSX,
		"dir":          FormatXLSX,
		"dir.table":    FormatXLSX,
	}

	for path, expected := range tests {
		if got := FormatFromPath(path); got != expected {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, expected)
		}
	}
}

func TestWriteRecords(t *testing.T) {
	records := sampleRecords()[:2]

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, records, FormatTable))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[0], "ROW"))
		assert.Contains(t, lines[2], "Alice Smith")
		assert.Contains(t, lines[3], "702")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, records, FormatJSON))

		var decoded []model.Record
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, records, decoded)
		assert.Contains(t, buf.String(), `"rowIndex": 1`)
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, nil, FormatJSON))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, records, FormatYAML))

		var decoded []model.Record
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, records, decoded)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteRecords(&buf, records, FormatCSV))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"RowIndex", "Location", "Extension", "Username"},
			{"0", "A13", "701", "Alice Smith"},
			{"1", "", "702", "Bob Jones"},
		}, rows)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, WriteRecords(&bytes.Buffer{}, records, Format("xml")))
	})
}

func TestExportRecords_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "directory.xlsx")

	require.NoError(t, ExportRecords(path, sampleRecords(), FormatXLSX))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Equal(t, SheetHeader, rows[0])
	assert.Equal(t, []string{"A13", "701", "Alice Smith"}, rows[1])
	assert.Equal(t, []string{"Office", "7013", "Carla"}, rows[3])
}

func TestExportRecords_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.json")

	require.NoError(t, ExportRecords(path, sampleRecords(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []model.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 4)
}
