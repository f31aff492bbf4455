package statements

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"Date", "Description", "Reference", "Debit", "Credit", "Balance"}
	cell, err := excelize.CoordinatesToCellName(1, 1)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, cell, &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"2024-03-05", "TRANSFERENCIA BCP", "OP-1001", "", "1500.00", "11500.00"},
		{"2024-03-16", "PAGO PROVEEDOR", "OP-1002", "980.50", "", "10519.50"},
	})

	txns, err := ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, 1, txns[0].Seq)
	assert.Equal(t, "TRANSFERENCIA BCP", txns[0].Description)
	assert.Equal(t, "OP-1001", txns[0].Reference)
	assert.True(t, txns[0].Credit.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, txns[0].Debit.IsZero())
	assert.True(t, txns[0].IsCredit())

	assert.Equal(t, 2, txns[1].Seq)
	assert.True(t, txns[1].Debit.Equal(decimal.RequireFromString("980.50")))
	assert.True(t, txns[1].Balance.Equal(decimal.RequireFromString("10519.50")))
}

func TestParseXLSX_Empty(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseXLSX(buf)
	assert.Error(t, err)
}

func TestParseXLSX_BadDate(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"not-a-date", "X", "R", "1.00", "", "1.00"},
	})

	_, err := ParseXLSX(buf)
	assert.ErrorContains(t, err, "unrecognized date")
}
