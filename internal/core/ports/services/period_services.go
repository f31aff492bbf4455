package services

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// PeriodReaderSvc defines read operations for fiscal period data
type PeriodReaderSvc interface {
	// GetPeriodByID retrieves a specific period.
	GetPeriodByID(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.Period, error)

	// ListPeriods retrieves all periods of an organization, newest first.
	ListPeriods(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Period, error)

	// ValidateClose runs the pre-close checks without changing anything,
	// reporting blocking issues and advisory warnings separately.
	ValidateClose(ctx context.Context, organizationID string, periodID string, requestingUserID string) (*domain.CloseReport, error)
}

// PeriodWriterSvc defines write operations for fiscal period data
type PeriodWriterSvc interface {
	// CreatePeriod opens a new fiscal period for a calendar month.
	CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)

	// ClosePeriod validates and closes an open or reopened period.
	ClosePeriod(ctx context.Context, organizationID string, periodID string, req dto.ClosePeriodRequest, requestingUserID string) (*domain.Period, error)

	// ReopenPeriod reopens a closed period with a mandatory reason.
	ReopenPeriod(ctx context.Context, organizationID string, periodID string, req dto.ReopenPeriodRequest, requestingUserID string) (*domain.Period, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
