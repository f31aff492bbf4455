package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/mapping"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for bank reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryWithTx {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryWithTx
var _ portsrepo.ReconciliationRepositoryWithTx = (*PgxReconciliationRepository)(nil)

const bankAccountColumns = `bank_account_id, organization_id, account_code, bank_name, account_number, currency_code,
	       created_at, created_by, last_updated_at, last_updated_by`

const statementColumns = `statement_id, bank_account_id, period_id, closing_balance, transaction_count,
	       created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, statement_id, seq, txn_date, description, reference, debit, credit, balance`

// --- Bank accounts ---

// SaveBankAccount persists a new bank account.
func (r *PgxReconciliationRepository) SaveBankAccount(ctx context.Context, bankAccount domain.BankAccount) error {
	m := mapping.ToModelBankAccount(bankAccount)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO bank_accounts (
			bank_account_id, organization_id, account_code, bank_name, account_number, currency_code,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.BankAccountID,
		m.OrganizationID,
		m.AccountCode,
		m.BankName,
		m.AccountNumber,
		m.CurrencyCode,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to save bank account "+m.BankAccountID)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxReconciliationRepository) FindBankAccountByID(ctx context.Context, organizationID string, bankAccountID string) (*domain.BankAccount, error) {
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, `
		SELECT `+bankAccountColumns+`
		FROM bank_accounts
		WHERE bank_account_id = $1 AND organization_id = $2;
	`, bankAccountID, organizationID).Scan(
		&m.BankAccountID,
		&m.OrganizationID,
		&m.AccountCode,
		&m.BankName,
		&m.AccountNumber,
		&m.CurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}
	account := mapping.ToDomainBankAccount(m)
	return &account, nil
}

// ListBankAccountsByOrganization retrieves all bank accounts of an organization.
func (r *PgxReconciliationRepository) ListBankAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.BankAccount, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+bankAccountColumns+`
		FROM bank_accounts
		WHERE organization_id = $1
		ORDER BY bank_name, account_number;
	`, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for organization "+organizationID, err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.BankAccountID,
			&m.OrganizationID,
			&m.AccountCode,
			&m.BankName,
			&m.AccountNumber,
			&m.CurrencyCode,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return mapping.ToDomainBankAccounts(accounts), nil
}

// --- Statements ---

func scanStatementRow(row pgx.Row) (*models.BankStatement, error) {
	var m models.BankStatement
	err := row.Scan(
		&m.StatementID,
		&m.BankAccountID,
		&m.PeriodID,
		&m.ClosingBalance,
		&m.TransactionCount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveStatement persists a statement and its transaction rows in one transaction.
func (r *PgxReconciliationRepository) SaveStatement(ctx context.Context, statement domain.BankStatement, transactions []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBankStatement(statement)
	_, err = tx.Exec(ctx, `
		INSERT INTO bank_statements (
			statement_id, bank_account_id, period_id, closing_balance, transaction_count,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.StatementID,
		m.BankAccountID,
		m.PeriodID,
		m.ClosingBalance,
		m.TransactionCount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to save statement "+m.StatementID)
	}

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		t := mapping.ToModelBankTransaction(txn)
		batch.Queue(`
			INSERT INTO bank_transactions (
				transaction_id, statement_id, seq, txn_date, description, reference, debit, credit, balance
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			t.TransactionID,
			t.StatementID,
			t.Seq,
			t.Date,
			t.Description,
			t.Reference,
			t.Debit,
			t.Credit,
			t.Balance,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translatePgError(err, "failed to save transactions for statement "+m.StatementID)
	}

	return r.Commit(ctx, tx)
}

// DeleteStatement removes a statement and its rows. It refuses when any row
// of the statement is matched.
func (r *PgxReconciliationRepository) DeleteStatement(ctx context.Context, statementID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var matchCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reconciliation_matches m
		JOIN bank_transactions t ON t.transaction_id = m.bank_transaction_id
		WHERE t.statement_id = $1;
	`, statementID).Scan(&matchCount)
	if err != nil {
		return translatePgError(err, "failed to count matches for statement "+statementID)
	}
	if matchCount > 0 {
		return fmt.Errorf("%w: statement %s has %d confirmed matches", apperrors.ErrConflict, statementID, matchCount)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bank_transactions WHERE statement_id = $1;`, statementID); err != nil {
		return translatePgError(err, "failed to delete transactions of statement "+statementID)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM bank_statements WHERE statement_id = $1;`, statementID)
	if err != nil {
		return translatePgError(err, "failed to delete statement "+statementID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("statement " + statementID + " not found")
	}

	return r.Commit(ctx, tx)
}

// FindStatementByID retrieves a statement by its ID.
func (r *PgxReconciliationRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.BankStatement, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+statementColumns+`
		FROM bank_statements
		WHERE statement_id = $1;
	`, statementID)

	m, err := scanStatementRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement "+statementID, err)
	}
	statement := mapping.ToDomainBankStatement(*m)
	return &statement, nil
}

// FindStatementByPeriod retrieves the statement for a (bank account, period) pair.
func (r *PgxReconciliationRepository) FindStatementByPeriod(ctx context.Context, bankAccountID string, periodID string) (*domain.BankStatement, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+statementColumns+`
		FROM bank_statements
		WHERE bank_account_id = $1 AND period_id = $2;
	`, bankAccountID, periodID)

	m, err := scanStatementRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement for bank account "+bankAccountID, err)
	}
	statement := mapping.ToDomainBankStatement(*m)
	return &statement, nil
}

// FindStatementByTransaction retrieves the statement one of the bank account's
// transactions belongs to.
func (r *PgxReconciliationRepository) FindStatementByTransaction(ctx context.Context, bankAccountID string, transactionID string) (*domain.BankStatement, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT s.statement_id, s.bank_account_id, s.period_id, s.closing_balance, s.transaction_count,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM bank_statements s
		JOIN bank_transactions t ON t.statement_id = s.statement_id
		WHERE t.transaction_id = $1 AND s.bank_account_id = $2;
	`, transactionID, bankAccountID)

	m, err := scanStatementRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find statement for transaction "+transactionID, err)
	}
	statement := mapping.ToDomainBankStatement(*m)
	return &statement, nil
}

// ListTransactionsByStatement retrieves all statement rows in import order.
func (r *PgxReconciliationRepository) ListTransactionsByStatement(ctx context.Context, statementID string) ([]domain.BankTransaction, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM bank_transactions
		WHERE statement_id = $1
		ORDER BY seq;
	`, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for statement "+statementID, err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		err := rows.Scan(
			&m.TransactionID,
			&m.StatementID,
			&m.Seq,
			&m.Date,
			&m.Description,
			&m.Reference,
			&m.Debit,
			&m.Credit,
			&m.Balance,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainBankTransactions(txns), nil
}

// --- Matches ---

// SaveMatch persists a match. The unique indexes on bank_transaction_id and
// entry_line_id surface a second match of either side as apperrors.ErrDuplicate.
func (r *PgxReconciliationRepository) SaveMatch(ctx context.Context, match domain.Match) error {
	m := mapping.ToModelMatch(match)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reconciliation_matches (
			match_id, bank_transaction_id, entry_line_id, source, matched_by, matched_at
		)
		VALUES ($1, $2, $3, $4, $5, $6);
	`,
		m.MatchID,
		m.BankTransactionID,
		m.EntryLineID,
		m.Source,
		m.MatchedBy,
		m.MatchedAt,
	)
	if err != nil {
		return translatePgError(err, "failed to save match "+m.MatchID)
	}
	return nil
}

// DeleteMatch removes a confirmed match.
func (r *PgxReconciliationRepository) DeleteMatch(ctx context.Context, matchID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reconciliation_matches WHERE match_id = $1;`, matchID)
	if err != nil {
		return translatePgError(err, "failed to delete match "+matchID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("match " + matchID + " not found")
	}
	return nil
}

func scanMatchRows(rows pgx.Rows) ([]models.Match, error) {
	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		err := rows.Scan(
			&m.MatchID,
			&m.BankTransactionID,
			&m.EntryLineID,
			&m.Source,
			&m.MatchedBy,
			&m.MatchedAt,
		)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// FindMatchByID retrieves a match by its ID.
func (r *PgxReconciliationRepository) FindMatchByID(ctx context.Context, matchID string) (*domain.Match, error) {
	var m models.Match
	err := r.Pool.QueryRow(ctx, `
		SELECT match_id, bank_transaction_id, entry_line_id, source, matched_by, matched_at
		FROM reconciliation_matches
		WHERE match_id = $1;
	`, matchID).Scan(
		&m.MatchID,
		&m.BankTransactionID,
		&m.EntryLineID,
		&m.Source,
		&m.MatchedBy,
		&m.MatchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find match "+matchID, err)
	}
	match := mapping.ToDomainMatch(m)
	return &match, nil
}

// ListMatchesByStatement retrieves all matches whose bank transaction belongs
// to the statement.
func (r *PgxReconciliationRepository) ListMatchesByStatement(ctx context.Context, statementID string) ([]domain.Match, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT m.match_id, m.bank_transaction_id, m.entry_line_id, m.source, m.matched_by, m.matched_at
		FROM reconciliation_matches m
		JOIN bank_transactions t ON t.transaction_id = m.bank_transaction_id
		WHERE t.statement_id = $1
		ORDER BY m.matched_at;
	`, statementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query matches for statement "+statementID, err)
	}
	defer rows.Close()

	matches, err := scanMatchRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan match rows", err)
	}
	return mapping.ToDomainMatches(matches), nil
}

const postedLineQuery = `
	SELECT ` + lineColumns + `
	FROM entry_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	%s
	WHERE e.organization_id = $1
	  AND l.account_code = $2
	  AND e.status = 'POSTED'
	  AND e.entry_date >= $3 AND e.entry_date < $4
	%s
	ORDER BY e.entry_date, l.line_id;
`

// ListUnmatchedPostedLines retrieves POSTED lines on the account code within
// [start, end) that have no confirmed match yet.
func (r *PgxReconciliationRepository) ListUnmatchedPostedLines(ctx context.Context, organizationID string, accountCode string, start time.Time, end time.Time) ([]domain.EntryLine, error) {
	query := fmt.Sprintf(postedLineQuery,
		`LEFT JOIN reconciliation_matches m ON m.entry_line_id = l.line_id`,
		`AND m.match_id IS NULL`,
	)
	return r.queryPostedLines(ctx, query, organizationID, accountCode, start, end)
}

// ListPostedLines retrieves every POSTED line on the account code within [start, end).
func (r *PgxReconciliationRepository) ListPostedLines(ctx context.Context, organizationID string, accountCode string, start time.Time, end time.Time) ([]domain.EntryLine, error) {
	query := fmt.Sprintf(postedLineQuery, "", "")
	return r.queryPostedLines(ctx, query, organizationID, accountCode, start, end)
}

func (r *PgxReconciliationRepository) queryPostedLines(ctx context.Context, query string, organizationID string, accountCode string, start time.Time, end time.Time) ([]domain.EntryLine, error) {
	rows, err := r.Pool.Query(ctx, query, organizationID, accountCode, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted lines on account "+accountCode, err)
	}
	defer rows.Close()

	modelLines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan posted line rows", err)
	}
	return mapping.ToDomainEntryLines(modelLines), nil
}

// --- Finalized reconciliations ---

// SaveReconciliation persists the finalized outcome record. The unique index
// on (bank_account_id, period_id) makes a second finalization fail.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, reconciliation domain.Reconciliation) error {
	m := mapping.ToModelReconciliation(reconciliation)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reconciliations (
			reconciliation_id, bank_account_id, period_id, book_balance, bank_balance,
			pending_debits, pending_credits, reconciled_balance, difference, unreconciled_count,
			notes, finalized_by, finalized_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.ReconciliationID,
		m.BankAccountID,
		m.PeriodID,
		m.BookBalance,
		m.BankBalance,
		m.PendingDebits,
		m.PendingCredits,
		m.ReconciledBalance,
		m.Difference,
		m.UnreconciledCount,
		m.Notes,
		m.FinalizedBy,
		m.FinalizedAt,
	)
	if err != nil {
		return translatePgError(err, "failed to save reconciliation "+m.ReconciliationID)
	}
	return nil
}

// FindReconciliation retrieves the finalized record for a (bank account, period) pair.
func (r *PgxReconciliationRepository) FindReconciliation(ctx context.Context, bankAccountID string, periodID string) (*domain.Reconciliation, error) {
	var m models.Reconciliation
	err := r.Pool.QueryRow(ctx, `
		SELECT reconciliation_id, bank_account_id, period_id, book_balance, bank_balance,
		       pending_debits, pending_credits, reconciled_balance, difference, unreconciled_count,
		       notes, finalized_by, finalized_at
		FROM reconciliations
		WHERE bank_account_id = $1 AND period_id = $2;
	`, bankAccountID, periodID).Scan(
		&m.ReconciliationID,
		&m.BankAccountID,
		&m.PeriodID,
		&m.BookBalance,
		&m.BankBalance,
		&m.PendingDebits,
		&m.PendingCredits,
		&m.ReconciledBalance,
		&m.Difference,
		&m.UnreconciledCount,
		&m.Notes,
		&m.FinalizedBy,
		&m.FinalizedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation for bank account "+bankAccountID, err)
	}
	recon := mapping.ToDomainReconciliation(m)
	return &recon, nil
}
