package statements

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected column order on the first sheet, one header row:
// Date | Description | Reference | Debit | Credit | Balance
const headerRows = 1

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05"}

// ParseXLSX reads an uploaded bank statement workbook and returns its rows in
// sheet order. IDs are not assigned; the caller owns persistence identity.
func ParseXLSX(r io.Reader) ([]domain.BankTransaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("statement workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement rows: %w", err)
	}
	if len(rows) <= headerRows {
		return nil, fmt.Errorf("statement workbook has no transaction rows")
	}

	txns := make([]domain.BankTransaction, 0, len(rows)-headerRows)
	for i, row := range rows[headerRows:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("statement row %d has %d columns, want 6", i+headerRows+1, len(row))
		}

		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("statement row %d: %w", i+headerRows+1, err)
		}
		debit, err := parseAmount(row[3])
		if err != nil {
			return nil, fmt.Errorf("statement row %d debit: %w", i+headerRows+1, err)
		}
		credit, err := parseAmount(row[4])
		if err != nil {
			return nil, fmt.Errorf("statement row %d credit: %w", i+headerRows+1, err)
		}
		balance, err := parseAmount(row[5])
		if err != nil {
			return nil, fmt.Errorf("statement row %d balance: %w", i+headerRows+1, err)
		}

		txns = append(txns, domain.BankTransaction{
			Seq:         len(txns) + 1,
			Date:        date,
			Description: strings.TrimSpace(row[1]),
			Reference:   strings.TrimSpace(row[2]),
			Debit:       debit,
			Credit:      credit,
			Balance:     balance,
		})
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("statement workbook has no transaction rows")
	}
	return txns, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseDate(cell string) (time.Time, error) {
	value := strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseAmount(cell string) (decimal.Decimal, error) {
	value := strings.TrimSpace(cell)
	if value == "" {
		return decimal.Zero, nil
	}
	// Tolerate thousands separators emitted by bank portals.
	value = strings.ReplaceAll(value, ",", "")
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unrecognized amount %q", cell)
	}
	return d, nil
}
