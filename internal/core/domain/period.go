package domain

import "time"

// PeriodStatus indicates the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen     PeriodStatus = "OPEN"
	PeriodClosed   PeriodStatus = "CLOSED"
	PeriodReopened PeriodStatus = "REOPENED"
)

// Period is a calendar month scoping which entries may be created or edited.
// Exactly one period exists per (organization, year, month). A closed period
// never returns to plain OPEN; reopening leaves the REOPENED audit marker.
type Period struct {
	PeriodID       string       `json:"periodID"` // Primary key (UUID)
	OrganizationID string       `json:"organizationID"`
	Year           int          `json:"year"`
	Month          time.Month   `json:"month"`
	Status         PeriodStatus `json:"status"`
	ClosedAt       *time.Time   `json:"closedAt,omitempty"`
	ClosedBy       *string      `json:"closedBy,omitempty"`
	CloseReason    *string      `json:"closeReason,omitempty"`
	ReopenedAt     *time.Time   `json:"reopenedAt,omitempty"`
	ReopenedBy     *string      `json:"reopenedBy,omitempty"`
	ReopenReason   *string      `json:"reopenReason,omitempty"`
	AuditFields
}

// Start returns the first instant of the period's month (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month (exclusive bound).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether the given date falls within the period's month.
func (p Period) Contains(date time.Time) bool {
	d := date.UTC()
	return !d.Before(p.Start()) && d.Before(p.End())
}

// AcceptsMutations reports whether entries dated in this period may be
// created, edited, or posted. REOPENED behaves like OPEN for mutations.
func (p Period) AcceptsMutations() bool {
	return p.Status == PeriodOpen || p.Status == PeriodReopened
}

// CloseIssue is one finding from a pre-close validation pass.
type CloseIssue struct {
	Code    string
	Message string
	EntryID string
}

// CloseReport is the result of a pre-close validation pass. Issues block
// closing; Warnings are advisory and never do.
type CloseReport struct {
	Issues   []CloseIssue
	Warnings []CloseIssue
}

// Valid reports whether the period may close.
func (r CloseReport) Valid() bool {
	return len(r.Issues) == 0
}
