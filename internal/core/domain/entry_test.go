package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

func TestEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.EntryLine
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid debit line",
			line: domain.EntryLine{
				AccountCode: "10.10",
				Debit:       decimal.NewFromInt(100),
			},
			wantErr: false,
		},
		{
			name: "valid credit line",
			line: domain.EntryLine{
				AccountCode: "70.10",
				Credit:      decimal.NewFromInt(100),
			},
			wantErr: false,
		},
		{
			name:    "missing account code",
			line:    domain.EntryLine{Debit: decimal.NewFromInt(100)},
			wantErr: true,
			errMsg:  "account code is required",
		},
		{
			name: "negative amount",
			line: domain.EntryLine{
				AccountCode: "10.10",
				Debit:       decimal.NewFromInt(-5),
			},
			wantErr: true,
			errMsg:  "must not be negative",
		},
		{
			name: "both sides zero",
			line: domain.EntryLine{
				AccountCode: "10.10",
			},
			wantErr: true,
			errMsg:  "must have a debit or a credit amount",
		},
		{
			name: "both sides set",
			line: domain.EntryLine{
				AccountCode: "10.10",
				Debit:       decimal.NewFromInt(50),
				Credit:      decimal.NewFromInt(50),
			},
			wantErr: true,
			errMsg:  "must not have both debit and credit amounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.Draft.IsTerminal())
	assert.False(t, domain.Posted.IsTerminal())
	assert.True(t, domain.Reversed.IsTerminal())
	assert.True(t, domain.Cancelled.IsTerminal())
	assert.True(t, domain.Voided.IsTerminal())
}

func TestEntryLine_Amount(t *testing.T) {
	debit := domain.EntryLine{AccountCode: "10.10", Debit: decimal.NewFromInt(75)}
	credit := domain.EntryLine{AccountCode: "70.10", Credit: decimal.NewFromInt(75)}

	assert.True(t, debit.Amount().Equal(decimal.NewFromInt(75)))
	assert.True(t, debit.IsDebit())
	assert.True(t, credit.Amount().Equal(decimal.NewFromInt(75)))
	assert.False(t, credit.IsDebit())
}
