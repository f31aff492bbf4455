package models

import "time"

// PeriodStatus indicates the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen     PeriodStatus = "OPEN"
	PeriodClosed   PeriodStatus = "CLOSED"
	PeriodReopened PeriodStatus = "REOPENED"
)

// Period is the periods row; unique on (organization_id, year, month).
type Period struct {
	PeriodID       string       `db:"period_id"`
	OrganizationID string       `db:"organization_id"`
	Year           int          `db:"year"`
	Month          int          `db:"month"`
	Status         PeriodStatus `db:"status"`
	ClosedAt       *time.Time   `db:"closed_at"`
	ClosedBy       *string      `db:"closed_by"`
	CloseReason    *string      `db:"close_reason"`
	ReopenedAt     *time.Time   `db:"reopened_at"`
	ReopenedBy     *string      `db:"reopened_by"`
	ReopenReason   *string      `db:"reopen_reason"`
	AuditFields
}
