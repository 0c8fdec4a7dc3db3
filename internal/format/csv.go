package format

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV serializes an export view (header plus rows) to path as UTF-8
// comma-delimited text. The write is all-or-nothing: rows go to a temporary
// file in the destination directory which is renamed into place only after a
// successful flush, so a failure never leaves a partial file behind.
// An existing file at path is overwritten.
func WriteCSV(path string, view [][]string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(view); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write export rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close export file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize export file: %w", err)
	}
	return nil
}
