package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// TableName is the PostgreSQL table holding the latest cleaned listings.
const TableName = "cleaned_listings"

const batchSize = 50

// PostgresWriter persists the cleaned table to PostgreSQL. The table is
// recreated on every Write because its columns follow the cleaned schema.
type PostgresWriter struct {
	db    *sql.DB
	runID uuid.UUID
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// back-off, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, runID uuid.UUID, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres-ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &PostgresWriter{db: db, runID: runID}, nil
}

// Write replaces the table contents with t inside one transaction.
func (pw *PostgresWriter) Write(t *models.Table) error {
	kinds, err := columnKinds(t)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(TableName)); err != nil {
		return fmt.Errorf("postgres: drop: %w", err)
	}
	if _, err := tx.Exec(createTableSQL(t.Columns(), kinds)); err != nil {
		return fmt.Errorf("postgres: create: %w", err)
	}

	for start := 0; start < t.Len(); start += batchSize {
		end := min(start+batchSize, t.Len())
		args, err := batchArgs(t, kinds, pw.runID, start, end)
		if err != nil {
			return fmt.Errorf("postgres: rows %d-%d: %w", start, end, err)
		}
		if _, err := tx.Exec(insertSQL(t.Columns(), end-start), args...); err != nil {
			return fmt.Errorf("postgres: insert rows %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Count returns the number of rows stored for this writer's run.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	err := pw.db.QueryRow(
		"SELECT COUNT(*) FROM "+pq.QuoteIdentifier(TableName)+" WHERE run_id = $1", pw.runID.String(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func columnKinds(t *models.Table) ([]models.Kind, error) {
	cols := t.Columns()
	kinds := make([]models.Kind, len(cols))
	for i, name := range cols {
		k, err := t.ColumnKind(name)
		if err != nil {
			return nil, err
		}
		kinds[i] = k
	}
	return kinds, nil
}

func sqlType(k models.Kind) string {
	switch k {
	case models.KindNumber:
		return "DOUBLE PRECISION"
	case models.KindBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

func createTableSQL(cols []string, kinds []models.Kind) string {
	defs := []string{"row_id SERIAL PRIMARY KEY", "run_id UUID NOT NULL"}
	for i, name := range cols {
		defs = append(defs, pq.QuoteIdentifier(name)+" "+sqlType(kinds[i]))
	}
	return "CREATE TABLE " + pq.QuoteIdentifier(TableName) + " (\n\t" + strings.Join(defs, ",\n\t") + "\n)"
}

func insertSQL(cols []string, rows int) string {
	quoted := make([]string, 0, len(cols)+1)
	quoted = append(quoted, "run_id")
	for _, c := range cols {
		quoted = append(quoted, pq.QuoteIdentifier(c))
	}

	width := len(quoted)
	valueStrings := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		ph := make([]string, width)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", r*width+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(TableName), strings.Join(quoted, ", "), strings.Join(valueStrings, ","))
}

func batchArgs(t *models.Table, kinds []models.Kind, runID uuid.UUID, start, end int) ([]any, error) {
	cols := t.Columns()
	args := make([]any, 0, (end-start)*(len(cols)+1))
	for r := start; r < end; r++ {
		args = append(args, runID.String())
		for i, name := range cols {
			v, err := t.At(r, name)
			if err != nil {
				return nil, err
			}
			args = append(args, sqlArg(v, kinds[i]))
		}
	}
	return args, nil
}

// sqlArg converts a cell for a column of the given kind. Mixed-kind columns
// are TEXT and receive the CSV rendering.
func sqlArg(v models.Value, k models.Kind) any {
	if v.IsMissing() {
		return nil
	}
	switch k {
	case models.KindNumber:
		f, _ := v.Float()
		return f
	case models.KindBool:
		b, _ := v.Flag()
		return b
	default:
		return v.String()
	}
}
