package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/accounting"
)

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name          string
		lines         []domain.EntryLine
		decimalPlaces int32
		wantErr       bool
		errMsg        string
	}{
		{
			name: "balanced two line entry",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.NewFromInt(100)},
				{AccountCode: "70.10", Credit: decimal.NewFromInt(100)},
			},
			decimalPlaces: 2,
			wantErr:       false,
		},
		{
			name: "balanced split entry",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.RequireFromString("118.00")},
				{AccountCode: "70.10", Credit: decimal.RequireFromString("100.00")},
				{AccountCode: "40.11", Credit: decimal.RequireFromString("18.00")},
			},
			decimalPlaces: 2,
			wantErr:       false,
		},
		{
			name: "unbalanced entry",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.NewFromInt(100)},
				{AccountCode: "70.10", Credit: decimal.NewFromInt(90)},
			},
			decimalPlaces: 2,
			wantErr:       true,
			errMsg:        "does not equal credits sum",
		},
		{
			name: "too few lines",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.NewFromInt(100)},
			},
			decimalPlaces: 2,
			wantErr:       true,
			errMsg:        "at least two lines",
		},
		{
			name: "amount beyond currency precision",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.RequireFromString("100.005")},
				{AccountCode: "70.10", Credit: decimal.RequireFromString("100.005")},
			},
			decimalPlaces: 2,
			wantErr:       true,
			errMsg:        "decimal places",
		},
		{
			name: "zero decimal currency accepts whole amounts",
			lines: []domain.EntryLine{
				{AccountCode: "10.10", Debit: decimal.NewFromInt(500)},
				{AccountCode: "70.10", Credit: decimal.NewFromInt(500)},
			},
			decimalPlaces: 0,
			wantErr:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryBalance(tt.lines, tt.decimalPlaces)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSumDebitsCredits(t *testing.T) {
	lines := []domain.EntryLine{
		{AccountCode: "10.10", Debit: decimal.NewFromInt(60)},
		{AccountCode: "10.20", Debit: decimal.NewFromInt(40)},
		{AccountCode: "70.10", Credit: decimal.NewFromInt(100)},
	}

	debits, credits := accounting.SumDebitsCredits(lines)
	assert.True(t, debits.Equal(decimal.NewFromInt(100)))
	assert.True(t, credits.Equal(decimal.NewFromInt(100)))
}

func TestSignedAmount(t *testing.T) {
	debit := domain.EntryLine{AccountCode: "10.10", Debit: decimal.NewFromInt(100)}
	credit := domain.EntryLine{AccountCode: "70.10", Credit: decimal.NewFromInt(100)}

	tests := []struct {
		name   string
		line   domain.EntryLine
		nature domain.AccountNature
		want   string
	}{
		{name: "debit on asset is positive", line: debit, nature: domain.Asset, want: "100"},
		{name: "credit on asset is negative", line: credit, nature: domain.Asset, want: "-100"},
		{name: "credit on income is positive", line: credit, nature: domain.Income, want: "100"},
		{name: "debit on liability is negative", line: debit, nature: domain.Liability, want: "-100"},
		{name: "debit on contra is negative", line: debit, nature: domain.Contra, want: "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.line, tt.nature)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSignedAmount_UnknownNature(t *testing.T) {
	line := domain.EntryLine{AccountCode: "10.10", Debit: decimal.NewFromInt(100)}

	_, err := accounting.SignedAmount(line, domain.AccountNature("BOGUS"))
	assert.Error(t, err)
}
