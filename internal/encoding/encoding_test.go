package encoding

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name" yaml:"name"`
	Ext  string `json:"ext" yaml:"ext"`
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, []sample{{Name: "Ann", Ext: "701"}}))
	assert.Equal(t, "[\n  {\n    \"name\": \"Ann\",\n    \"ext\": \"701\"\n  }\n]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteYAML(&buf, []sample{{Name: "Ann", Ext: "701"}}))
	assert.Equal(t, "- name: Ann\n  ext: \"701\"\n", buf.String())
}

func TestWriteFileCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, WriteFile(path, []byte("hello"), 0o644))
	assert.True(t, FileExists(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileExists(t *testing.T) {
	if FileExists(filepath.Join(t.TempDir(), "missing")) {
		t.Errorf("FileExists() = true for a missing file, want false")
	}
}
