package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/mapping"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, organization_id, period_id, entry_date, narrative, currency_code,
	       exchange_rate, origin, status, reversed_entry_id, reversal_entry_id, void_reason,
	       created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `l.line_id, l.entry_id, l.account_code, l.debit, l.credit, l.memo,
	       l.counterparty_id, l.cost_center,
	       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
	       e.entry_date, e.narrative, e.status`

// lockPeriodForShare verifies, inside the transaction, that the period still
// accepts mutations. The share lock conflicts with the close's FOR UPDATE,
// so a concurrent close waits for this transaction or vice versa.
func lockPeriodForShare(ctx context.Context, tx pgx.Tx, organizationID, periodID string) error {
	var status models.PeriodStatus
	err := tx.QueryRow(ctx, `
		SELECT status FROM periods
		WHERE period_id = $1 AND organization_id = $2
		FOR SHARE;
	`, periodID, organizationID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("period " + periodID + " not found")
		}
		return translatePgError(err, "failed to lock period "+periodID)
	}
	if status != models.PeriodOpen && status != models.PeriodReopened {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, status)
	}
	return nil
}

func scanEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	var reversedID, reversalID, voidReason sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.PeriodID,
		&m.EntryDate,
		&m.Narrative,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Origin,
		&m.Status,
		&reversedID,
		&reversalID,
		&voidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reversedID.Valid {
		m.ReversedEntryID = &reversedID.String
	}
	if reversalID.Valid {
		m.ReversalEntryID = &reversalID.String
	}
	if voidReason.Valid {
		m.VoidReason = &voidReason.String
	}
	return &m, nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, m models.JournalEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, organization_id, period_id, entry_date, narrative, currency_code,
			exchange_rate, origin, status, reversed_entry_id, reversal_entry_id, void_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.EntryID,
		m.OrganizationID,
		m.PeriodID,
		m.EntryDate,
		m.Narrative,
		m.CurrencyCode,
		m.ExchangeRate,
		m.Origin,
		m.Status,
		m.ReversedEntryID,
		m.ReversalEntryID,
		m.VoidReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return err
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.EntryLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelEntryLine(line)
		batch.Queue(`
			INSERT INTO entry_lines (
				line_id, entry_id, account_code, debit, credit, memo,
				counterparty_id, cost_center,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`,
			m.LineID,
			m.EntryID,
			m.AccountCode,
			m.Debit,
			m.Credit,
			m.Memo,
			m.CounterpartyID,
			m.CostCenter,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// SaveEntry persists a draft entry and its lines within a transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockPeriodForShare(ctx, tx, entry.OrganizationID, entry.PeriodID); err != nil {
		return err
	}

	if err := insertEntry(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
		return translatePgError(err, "failed to insert entry "+entry.EntryID)
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return translatePgError(err, "failed to insert lines for entry "+entry.EntryID)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntry updates a draft entry's header, replacing its lines when lines is non-nil.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockPeriodForShare(ctx, tx, entry.OrganizationID, entry.PeriodID); err != nil {
		return err
	}

	m := mapping.ToModelJournalEntry(entry)
	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET period_id = $1, entry_date = $2, narrative = $3, currency_code = $4,
		    exchange_rate = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $8 AND organization_id = $9 AND status = 'DRAFT';
	`,
		m.PeriodID,
		m.EntryDate,
		m.Narrative,
		m.CurrencyCode,
		m.ExchangeRate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.EntryID,
		m.OrganizationID,
	)
	if err != nil {
		return translatePgError(err, "failed to update entry "+entry.EntryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not an editable draft", apperrors.ErrConflict, entry.EntryID)
	}

	if lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
			return translatePgError(err, "failed to replace lines for entry "+entry.EntryID)
		}
		if err := insertLines(ctx, tx, lines); err != nil {
			return translatePgError(err, "failed to insert lines for entry "+entry.EntryID)
		}
	}

	return r.Commit(ctx, tx)
}

// PostEntry flips a draft to POSTED after re-verifying the period inside the transaction.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, organizationID string, entryID string, periodID string, postedBy string, postedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockPeriodForShare(ctx, tx, organizationID, periodID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'POSTED', last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND organization_id = $4 AND status = 'DRAFT';
	`, postedAt, postedBy, entryID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to post entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
	}

	return r.Commit(ctx, tx)
}

// CancelEntry marks a draft entry CANCELLED. The status predicate guards
// against a concurrent post between the service's check and this UPDATE.
func (r *PgxEntryRepository) CancelEntry(ctx context.Context, organizationID string, entryID string, cancelledBy string, cancelledAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'CANCELLED', last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND organization_id = $4 AND status = 'DRAFT';
	`, cancelledAt, cancelledBy, entryID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to cancel entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not a draft", apperrors.ErrConflict, entryID)
	}
	return nil
}

// SaveReversal persists a posted reversal and marks the original REVERSED in one transaction.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.EntryLine, originalEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockPeriodForShare(ctx, tx, reversal.OrganizationID, reversal.PeriodID); err != nil {
		return err
	}

	if err := insertEntry(ctx, tx, mapping.ToModelJournalEntry(reversal)); err != nil {
		return translatePgError(err, "failed to insert reversal "+reversal.EntryID)
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return translatePgError(err, "failed to insert lines for reversal "+reversal.EntryID)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'REVERSED', reversal_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND organization_id = $5 AND status = 'POSTED';
	`, reversal.EntryID, reversal.LastUpdatedAt, reversal.LastUpdatedBy, originalEntryID, reversal.OrganizationID)
	if err != nil {
		return translatePgError(err, "failed to mark entry "+originalEntryID+" reversed")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, originalEntryID)
	}

	return r.Commit(ctx, tx)
}

// VoidEntry marks a posted entry VOIDED and records the reason.
func (r *PgxEntryRepository) VoidEntry(ctx context.Context, organizationID string, entryID string, reason string, voidedBy string, voidedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'VOIDED', void_reason = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND organization_id = $5 AND status = 'POSTED';
	`, reason, voidedAt, voidedBy, entryID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to void entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM journal_entries
		WHERE entry_id = $1 AND organization_id = $2;
	`, entryID, organizationID)

	m, err := scanEntryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// ListEntriesByOrganization retrieves a paginated list of entries using token-based pagination.
// It returns the list of entries, a token for the next page (if any), and an error.
func (r *PgxEntryRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable; entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for organization "+organizationID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListEntriesByPeriod retrieves all entries of a period, optionally filtered by status.
func (r *PgxEntryRepository) ListEntriesByPeriod(ctx context.Context, organizationID string, periodID string, status *domain.EntryStatus) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1 AND period_id = $2
	`
	args := []interface{}{organizationID, periodID}
	if status != nil {
		args = append(args, string(*status))
		query += ` AND status = $3`
	}
	query += ` ORDER BY entry_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for period "+periodID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, scanErr := scanEntryRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

func scanLineRows(rows pgx.Rows) ([]models.EntryLine, error) {
	lines := []models.EntryLine{}
	for rows.Next() {
		var m models.EntryLine
		var counterpartyID, costCenter sql.NullString
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountCode,
			&m.Debit,
			&m.Credit,
			&m.Memo,
			&counterpartyID,
			&costCenter,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.EntryDate,
			&m.EntryNarrative,
			&m.EntryStatus,
		)
		if err != nil {
			return nil, err
		}
		if counterpartyID.Valid {
			m.CounterpartyID = &counterpartyID.String
		}
		if costCenter.Valid {
			m.CostCenter = &costCenter.String
		}
		lines = append(lines, m)
	}
	return lines, rows.Err()
}

// FindLinesByEntryID retrieves all lines belonging to a single entry.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+lineColumns+`
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.entry_id = $1
		ORDER BY l.line_id;
	`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line rows for entry "+entryID, err)
	}
	return mapping.ToDomainEntryLines(modelLines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	result := make(map[string][]domain.EntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+lineColumns+`
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_id;
	`, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	modelLines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line rows", err)
	}
	for _, m := range modelLines {
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainEntryLine(m))
	}
	return result, nil
}

// FindLineByID retrieves a single entry line with its parent entry columns joined in.
func (r *PgxEntryRepository) FindLineByID(ctx context.Context, organizationID string, lineID string) (*domain.EntryLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+lineColumns+`
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.line_id = $1 AND e.organization_id = $2;
	`, lineID, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line "+lineID, err)
	}
	defer rows.Close()

	modelLines, err := scanLineRows(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan line "+lineID, err)
	}
	if len(modelLines) == 0 {
		return nil, apperrors.ErrNotFound
	}
	line := mapping.ToDomainEntryLine(modelLines[0])
	return &line, nil
}
