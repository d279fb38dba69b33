// Package validation checks operator-supplied paths and file modes before they are used.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsValidInputCSV checks that path is an existing regular file with a .csv extension.
func IsValidInputCSV(path string) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("input file must have a .csv extension: %s", path)
	}
	return nil
}

// IsValidOutputPath checks that output is not a directory and would not overwrite input.
func IsValidOutputPath(input, output string) error {
	if output == "" {
		return fmt.Errorf("output file is required")
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", output)
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("error resolving path %s: %w", input, err)
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("error resolving path %s: %w", output, err)
	}
	if absIn == absOut {
		return fmt.Errorf("output file must differ from input file: %s", output)
	}
	return nil
}

// IsValidFilePermissions rejects modes that grant any permission to others.
// Files holding credentials should be 0600.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.Perm().String())
	}
	return nil
}
