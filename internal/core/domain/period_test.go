package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

func TestPeriod_Contains(t *testing.T) {
	period := domain.Period{Year: 2025, Month: time.March}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{
			name: "first day of the month",
			date: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "last day of the month",
			date: time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "day before the month",
			date: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "first day of the next month",
			date: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Contains(tt.date))
		})
	}
}

func TestPeriod_AcceptsMutations(t *testing.T) {
	tests := []struct {
		name   string
		status domain.PeriodStatus
		want   bool
	}{
		{name: "open period", status: domain.PeriodOpen, want: true},
		{name: "reopened period behaves like open", status: domain.PeriodReopened, want: true},
		{name: "closed period", status: domain.PeriodClosed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period := domain.Period{Year: 2025, Month: time.March, Status: tt.status}
			assert.Equal(t, tt.want, period.AcceptsMutations())
		})
	}
}

func TestPeriod_Bounds(t *testing.T) {
	period := domain.Period{Year: 2024, Month: time.December}

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), period.Start())
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), period.End())
}
