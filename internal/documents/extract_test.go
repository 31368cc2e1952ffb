package documents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractFile_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		fileType string
	}{
		{"notes.txt", "txt"},
		{"readme.md", "md"},
		{"data.json", "json"},
		{"table.csv", "csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.name, "file content here")
			text, fileType, err := ExtractFile(path)
			require.NoError(t, err)
			assert.Equal(t, "file content here", text)
			assert.Equal(t, tt.fileType, fileType)
		})
	}
}

func TestExtractFile_UppercaseExtension(t *testing.T) {
	path := writeTemp(t, "NOTES.TXT", "shouting")
	text, fileType, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shouting", text)
	assert.Equal(t, "txt", fileType)
}

func TestExtractFile_Unsupported(t *testing.T) {
	path := writeTemp(t, "image.png", "not text")
	_, _, err := ExtractFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractFile_Missing(t *testing.T) {
	_, _, err := ExtractFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
