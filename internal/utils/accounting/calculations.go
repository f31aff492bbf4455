package accounting

import (
	"fmt"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumDebitsCredits totals both sides of a set of entry lines.
func SumDebitsCredits(lines []domain.EntryLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks the double-entry invariant for an entry's lines:
// every line well-formed, amounts within the currency's minor-unit precision,
// and sum(debit) == sum(credit) exactly.
func ValidateEntryBalance(lines []domain.EntryLine, decimalPlaces int32) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		amount := line.Amount()
		if !amount.Equal(amount.Round(decimalPlaces)) {
			return fmt.Errorf("amount %s on account %s exceeds the currency's %d decimal places",
				amount.String(), line.AccountCode, decimalPlaces)
		}
	}

	debits, credits := SumDebitsCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("debits sum %s does not equal credits sum %s", debits.String(), credits.String())
	}
	return nil
}

// SignedAmount applies the account's normal balance sign to a line:
// debits are positive on ASSET/EXPENSE accounts, credits positive on
// LIABILITY/EQUITY/INCOME accounts. CONTRA accounts carry the sign opposite
// to the nature they offset, which for running balances behaves like
// LIABILITY.
func SignedAmount(line domain.EntryLine, nature domain.AccountNature) (decimal.Decimal, error) {
	amount := line.Amount()
	isDebit := line.IsDebit()

	switch nature {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income, domain.Contra:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account nature '%s' for account %s", nature, line.AccountCode)
	}
	return amount, nil
}
