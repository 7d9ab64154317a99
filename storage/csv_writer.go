package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"airbnb-cleaner/models"
)

// CSVWriter writes the cleaned table to a new CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	return &CSVWriter{file: f, writer: csv.NewWriter(f)}, nil
}

// Write writes the header and every row of t.
func (c *CSVWriter) Write(t *models.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for i, row := range t.Records() {
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writer.Flush()
	return c.file.Close()
}
