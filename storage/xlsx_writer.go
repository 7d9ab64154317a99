package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"airbnb-cleaner/models"
)

// SheetName is the worksheet the cleaned table is written to.
const SheetName = "listings"

// XLSXWriter writes the cleaned table to an Excel workbook with typed cells.
type XLSXWriter struct {
	path string
	file *excelize.File
}

func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: name sheet: %w", err)
	}
	return &XLSXWriter{path: path, file: f}, nil
}

// Write streams t into the sheet and saves the workbook. Numbers and bools
// keep their type; missing cells stay empty.
func (x *XLSXWriter) Write(t *models.Table) error {
	sw, err := x.file.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("xlsx: stream writer: %w", err)
	}

	header := make([]any, 0, len(t.Columns()))
	for _, name := range t.Columns() {
		header = append(header, name)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	cols := t.Columns()
	for r := 0; r < t.Len(); r++ {
		row := make([]any, len(cols))
		for c, name := range cols {
			v, err := t.At(r, name)
			if err != nil {
				return fmt.Errorf("xlsx: row %d: %w", r, err)
			}
			row[c] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", r, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", r, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}
	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func cellValue(v models.Value) any {
	if f, ok := v.Float(); ok && v.Kind() == models.KindNumber {
		return f
	}
	if b, ok := v.Flag(); ok {
		return b
	}
	if s, ok := v.Str(); ok {
		return s
	}
	return nil
}

func (x *XLSXWriter) Close() error {
	return x.file.Close()
}
