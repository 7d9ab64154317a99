package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"airbnb-cleaner/models"
)

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = errors.New("csv: input has no header")

// CSVReader loads a listings export from disk.
type CSVReader struct {
	path string
}

func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Read parses the whole file. A missing file is reported as an error wrapping
// os.ErrNotExist.
func (r *CSVReader) Read() (*models.Table, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", r.path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a header row followed by records. Rows may span lines
// inside quoted fields and may differ in length.
func ReadCSV(src io.Reader) (*models.Table, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read records: %w", err)
	}

	t, err := models.FromRecords(header, records)
	if err != nil {
		return nil, fmt.Errorf("csv: build table: %w", err)
	}
	return t, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
