package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL([]string{"price", "superhost", "room_type"},
		[]models.Kind{models.KindNumber, models.KindBool, models.KindText})
	want := "CREATE TABLE \"cleaned_listings\" (\n" +
		"\trow_id SERIAL PRIMARY KEY,\n" +
		"\trun_id UUID NOT NULL,\n" +
		"\t\"price\" DOUBLE PRECISION,\n" +
		"\t\"superhost\" BOOLEAN,\n" +
		"\t\"room_type\" TEXT\n" +
		")"
	assert.Equal(t, want, got)
}

func TestInsertSQL(t *testing.T) {
	got := insertSQL([]string{"a", "b"}, 2)
	assert.Equal(t, `INSERT INTO "cleaned_listings" (run_id, "a", "b") VALUES ($1,$2,$3),($4,$5,$6)`, got)
}

func TestBatchArgs(t *testing.T) {
	tbl, err := models.NewTable(
		[]string{"price", "superhost", "mixed"},
		[][]models.Value{
			{models.Number(10), models.Missing(), models.Number(30)},
			{models.Bool(true), models.Bool(false), models.Missing()},
			{models.Text("a"), models.Number(2), models.Bool(true)},
		},
	)
	require.NoError(t, err)

	kinds, err := columnKinds(tbl)
	require.NoError(t, err)
	assert.Equal(t, []models.Kind{models.KindNumber, models.KindBool, models.KindText}, kinds)

	runID := uuid.New()
	args, err := batchArgs(tbl, kinds, runID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{
		runID.String(), nil, false, "2",
		runID.String(), 30.0, nil, "TRUE",
	}, args)
}

func TestSQLType(t *testing.T) {
	assert.Equal(t, "DOUBLE PRECISION", sqlType(models.KindNumber))
	assert.Equal(t, "BOOLEAN", sqlType(models.KindBool))
	assert.Equal(t, "TEXT", sqlType(models.KindText))
	assert.Equal(t, "TEXT", sqlType(models.KindMissing))
}

func TestNewPostgresWriterUnreachable(t *testing.T) {
	retry := &utils.RetryConfig{MaxAttempts: 1}
	_, err := NewPostgresWriter("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1", uuid.New(), retry)
	assert.ErrorContains(t, err, "postgres-ping failed after 1 attempts")
}
