package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter saves the downloaded page to a single file, replacing any
// previous content.
type FileWriter struct {
	path string
}

// NewFileWriter returns a writer for filename.
func NewFileWriter(filename string) *FileWriter {
	return &FileWriter{path: filename}
}

// Path returns the destination file.
func (fw *FileWriter) Path() string {
	return fw.path
}

// Write stores page as UTF-8 text.
func (fw *FileWriter) Write(page string) error {
	if err := ensureDir(fw.path); err != nil {
		return err
	}
	if err := os.WriteFile(fw.path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write page file: %w", err)
	}
	return nil
}

// Validate ensures the file exists and has content.
func (fw *FileWriter) Validate() error {
	info, err := os.Stat(fw.path)
	if err != nil {
		return fmt.Errorf("stat page file: %w", err)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("page file is empty")
	}
	return nil
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
