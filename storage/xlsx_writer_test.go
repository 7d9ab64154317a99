package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"airbnb-cleaner/models"
)

func TestXLSXWriter(t *testing.T) {
	tbl, err := models.NewTable(
		[]string{"price", "borough", "superhost"},
		[][]models.Value{
			{models.Number(150), models.Number(72.25)},
			{models.Missing(), models.Text("Queens")},
			{models.Bool(true), models.Bool(false)},
		},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "listings.xlsx")
	w, err := NewXLSXWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(tbl))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"price", "borough", "superhost"}, rows[0])
	assert.Equal(t, "150", rows[1][0])
	assert.Equal(t, "", rows[1][1])
	assert.Equal(t, "72.25", rows[2][0])
	assert.Equal(t, "Queens", rows[2][1])

	typ, err := f.GetCellType(SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue(models.Missing()))
	assert.Equal(t, 2.5, cellValue(models.Number(2.5)))
	assert.Equal(t, true, cellValue(models.Bool(true)))
	assert.Equal(t, "x", cellValue(models.Text("x")))
}
