package storage

import "airbnb-cleaner/models"

// TableWriter is the interface any storage backend for the cleaned table must satisfy.
type TableWriter interface {
	Write(t *models.Table) error
	Close() error
}

// TableReader loads a raw table.
type TableReader interface {
	Read() (*models.Table, error)
}
