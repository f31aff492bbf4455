package repositories

import (
	"context"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data
type PeriodReader interface {
	// FindPeriodByID retrieves a specific period by its unique identifier.
	FindPeriodByID(ctx context.Context, organizationID string, periodID string) (*domain.Period, error)

	// FindPeriodByYearMonth retrieves the period for a given calendar month.
	FindPeriodByYearMonth(ctx context.Context, organizationID string, year int, month time.Month) (*domain.Period, error)

	// FindPeriodForDate retrieves the period whose month contains the given date.
	FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.Period, error)

	// ListPeriodsByOrganization retrieves all periods, newest first.
	ListPeriodsByOrganization(ctx context.Context, organizationID string) ([]domain.Period, error)
}

// PeriodWriter defines write operations for fiscal period data
type PeriodWriter interface {
	// SavePeriod persists a new period.
	SavePeriod(ctx context.Context, period domain.Period) error

	// ClosePeriod locks the period row, re-verifies in the same transaction that
	// no draft entries remain inside the period, and stamps it CLOSED.
	ClosePeriod(ctx context.Context, organizationID string, periodID string, closedBy string, closedAt time.Time, reason string) error

	// ReopenPeriod locks the period row and stamps a CLOSED period REOPENED.
	ReopenPeriod(ctx context.Context, organizationID string, periodID string, reopenedBy string, reopenedAt time.Time, reason string) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
