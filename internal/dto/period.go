package dto

import (
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Fiscal Period DTOs ---

// CreatePeriodRequest defines data for opening a new fiscal period.
type CreatePeriodRequest struct {
	Year  int `json:"year" binding:"required,min=1900,max=2999"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ClosePeriodRequest carries the optional close reason.
type ClosePeriodRequest struct {
	Reason string `json:"reason"`
}

// ReopenPeriodRequest carries the mandatory reopen reason.
type ReopenPeriodRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PeriodResponse defines the data returned for a fiscal period.
type PeriodResponse struct {
	PeriodID       string              `json:"periodID"`
	OrganizationID string              `json:"organizationID"`
	Year           int                 `json:"year"`
	Month          int                 `json:"month"`
	Status         domain.PeriodStatus `json:"status"`
	ClosedAt       *time.Time          `json:"closedAt,omitempty"`
	ClosedBy       *string             `json:"closedBy,omitempty"`
	CloseReason    *string             `json:"closeReason,omitempty"`
	ReopenedAt     *time.Time          `json:"reopenedAt,omitempty"`
	ReopenedBy     *string             `json:"reopenedBy,omitempty"`
	ReopenReason   *string             `json:"reopenReason,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

// ListPeriodsResponse wraps a list of fiscal periods.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// CloseValidationIssue is one finding of a pre-close check.
type CloseValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	EntryID string `json:"entryID,omitempty"`
}

// CloseValidationResponse reports whether a period can be closed.
// Issues block closing; warnings are advisory only.
type CloseValidationResponse struct {
	Valid        bool                   `json:"valid"`
	IssueCount   int                    `json:"issueCount"`
	WarningCount int                    `json:"warningCount"`
	Issues       []CloseValidationIssue `json:"issues"`
	Warnings     []CloseValidationIssue `json:"warnings"`
}

// ToPeriodResponse converts a domain.Period to its DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:       p.PeriodID,
		OrganizationID: p.OrganizationID,
		Year:           p.Year,
		Month:          int(p.Month),
		Status:         p.Status,
		ClosedAt:       p.ClosedAt,
		ClosedBy:       p.ClosedBy,
		CloseReason:    p.CloseReason,
		ReopenedAt:     p.ReopenedAt,
		ReopenedBy:     p.ReopenedBy,
		ReopenReason:   p.ReopenReason,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ToListPeriodsResponse converts a slice of domain.Period to DTO.
func ToListPeriodsResponse(ps []domain.Period) ListPeriodsResponse {
	list := make([]PeriodResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPeriodResponse(&p)
	}
	return ListPeriodsResponse{Periods: list}
}

// ToCloseValidationResponse converts a domain close report to DTO.
func ToCloseValidationResponse(report *domain.CloseReport) CloseValidationResponse {
	convert := func(findings []domain.CloseIssue) []CloseValidationIssue {
		out := make([]CloseValidationIssue, len(findings))
		for i, f := range findings {
			out[i] = CloseValidationIssue{
				Code:    f.Code,
				Message: f.Message,
				EntryID: f.EntryID,
			}
		}
		return out
	}
	return CloseValidationResponse{
		Valid:        report.Valid(),
		IssueCount:   len(report.Issues),
		WarningCount: len(report.Warnings),
		Issues:       convert(report.Issues),
		Warnings:     convert(report.Warnings),
	}
}
