package pgsql

import (
	"context"
	"database/sql"
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

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryWithTx
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, organization_id, year, month, status,
	       closed_at, closed_by, close_reason, reopened_at, reopened_by, reopen_reason,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanPeriodRow(row pgx.Row) (*models.Period, error) {
	var m models.Period
	var closedAt, reopenedAt sql.NullTime
	var closedBy, closeReason, reopenedBy, reopenReason sql.NullString
	err := row.Scan(
		&m.PeriodID,
		&m.OrganizationID,
		&m.Year,
		&m.Month,
		&m.Status,
		&closedAt,
		&closedBy,
		&closeReason,
		&reopenedAt,
		&reopenedBy,
		&reopenReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		m.ClosedAt = &closedAt.Time
	}
	if closedBy.Valid {
		m.ClosedBy = &closedBy.String
	}
	if closeReason.Valid {
		m.CloseReason = &closeReason.String
	}
	if reopenedAt.Valid {
		m.ReopenedAt = &reopenedAt.Time
	}
	if reopenedBy.Valid {
		m.ReopenedBy = &reopenedBy.String
	}
	if reopenReason.Valid {
		m.ReopenReason = &reopenReason.String
	}
	return &m, nil
}

// SavePeriod persists a new period. The unique index on (organization_id, year, month)
// surfaces duplicates as apperrors.ErrDuplicate.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	m := mapping.ToModelPeriod(period)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO periods (
			period_id, organization_id, year, month, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.PeriodID,
		m.OrganizationID,
		m.Year,
		m.Month,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, fmt.Sprintf("failed to save period %d-%02d", m.Year, m.Month))
	}
	return nil
}

// ClosePeriod stamps a period CLOSED after re-checking, under the row lock, that
// no draft entries remain inside it. NOWAIT makes a contended lock surface as
// 55P03 so the caller can retry instead of queueing behind posters.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, organizationID string, periodID string, closedBy string, closedAt time.Time, reason string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.PeriodStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM periods
		WHERE period_id = $1 AND organization_id = $2
		FOR UPDATE NOWAIT;
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

	var draftCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM journal_entries
		WHERE organization_id = $1 AND period_id = $2 AND status = 'DRAFT';
	`, organizationID, periodID).Scan(&draftCount)
	if err != nil {
		return translatePgError(err, "failed to count draft entries in period "+periodID)
	}
	if draftCount > 0 {
		return fmt.Errorf("%w: period %s has %d draft entries", apperrors.ErrValidation, periodID, draftCount)
	}

	_, err = tx.Exec(ctx, `
		UPDATE periods
		SET status = 'CLOSED', closed_at = $1, closed_by = $2, close_reason = $3,
		    last_updated_at = $1, last_updated_by = $2
		WHERE period_id = $4 AND organization_id = $5;
	`, closedAt, closedBy, nullableString(reason), periodID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to close period "+periodID)
	}

	return r.Commit(ctx, tx)
}

// ReopenPeriod stamps a CLOSED period REOPENED under a row lock.
func (r *PgxPeriodRepository) ReopenPeriod(ctx context.Context, organizationID string, periodID string, reopenedBy string, reopenedAt time.Time, reason string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.PeriodStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM periods
		WHERE period_id = $1 AND organization_id = $2
		FOR UPDATE NOWAIT;
	`, periodID, organizationID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("period " + periodID + " not found")
		}
		return translatePgError(err, "failed to lock period "+periodID)
	}
	if status != models.PeriodClosed {
		return fmt.Errorf("%w: period %s is %s", apperrors.ErrConflict, periodID, status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE periods
		SET status = 'REOPENED', reopened_at = $1, reopened_by = $2, reopen_reason = $3,
		    last_updated_at = $1, last_updated_by = $2
		WHERE period_id = $4 AND organization_id = $5;
	`, reopenedAt, reopenedBy, reason, periodID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to reopen period "+periodID)
	}

	return r.Commit(ctx, tx)
}

// FindPeriodByID retrieves a specific period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, organizationID string, periodID string) (*domain.Period, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+periodColumns+`
		FROM periods
		WHERE period_id = $1 AND organization_id = $2;
	`, periodID, organizationID)

	m, err := scanPeriodRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period by ID "+periodID, err)
	}

	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodByYearMonth retrieves the period covering a given calendar month.
func (r *PgxPeriodRepository) FindPeriodByYearMonth(ctx context.Context, organizationID string, year int, month time.Month) (*domain.Period, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+periodColumns+`
		FROM periods
		WHERE organization_id = $1 AND year = $2 AND month = $3;
	`, organizationID, year, int(month))

	m, err := scanPeriodRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find period %d-%02d", year, month), err)
	}

	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

// FindPeriodForDate retrieves the period whose month contains the given date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.Period, error) {
	return r.FindPeriodByYearMonth(ctx, organizationID, date.Year(), date.Month())
}

// ListPeriodsByOrganization retrieves all periods of an organization, newest first.
func (r *PgxPeriodRepository) ListPeriodsByOrganization(ctx context.Context, organizationID string) ([]domain.Period, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+periodColumns+`
		FROM periods
		WHERE organization_id = $1
		ORDER BY year DESC, month DESC;
	`, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for organization "+organizationID, err)
	}
	defer rows.Close()

	periods := []models.Period{}
	for rows.Next() {
		m, scanErr := scanPeriodRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", scanErr)
		}
		periods = append(periods, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return mapping.ToDomainPeriods(periods), nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
