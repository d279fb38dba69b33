package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/complaint-classifier/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInputCSV(t *testing.T) {
	tmpDir := t.TempDir()

	csvFile := filepath.Join(tmpDir, "complaints.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte("id,complaint\n"), 0600))
	txtFile := filepath.Join(tmpDir, "complaints.txt")
	require.NoError(t, os.WriteFile(txtFile, []byte("hello"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "valid csv", path: csvFile},
		{name: "empty path", path: "", errContains: "input file is required"},
		{name: "missing file", path: filepath.Join(tmpDir, "missing.csv"), errContains: "path does not exist"},
		{name: "directory", path: tmpDir, errContains: "not a regular file"},
		{name: "wrong extension", path: txtFile, errContains: ".csv extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputCSV(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestIsValidOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "in.csv")

	tests := []struct {
		name        string
		output      string
		errContains string
	}{
		{name: "new file", output: filepath.Join(tmpDir, "out.csv")},
		{name: "empty", output: "", errContains: "output file is required"},
		{name: "directory", output: tmpDir, errContains: "is a directory"},
		{name: "same as input", output: input, errContains: "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidOutputPath(input, tt.output)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestIsValidFilePermissions(t *testing.T) {
	assert.NoError(t, validation.IsValidFilePermissions(0600))
	assert.NoError(t, validation.IsValidFilePermissions(0640))
	assert.Error(t, validation.IsValidFilePermissions(0644))
	assert.Error(t, validation.IsValidFilePermissions(0777))
}
