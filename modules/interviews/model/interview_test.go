package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkInterview(start time.Time, durationMin int) *Interview {
	return &Interview{ScheduledAt: start, DurationMin: durationMin}
}

func TestInterview_Overlaps(t *testing.T) {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    *Interview
		b    *Interview
		want bool
	}{
		{
			name: "identical windows overlap",
			a:    mkInterview(base, 60),
			b:    mkInterview(base, 60),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mkInterview(base, 60),
			b:    mkInterview(base.Add(30*time.Minute), 60),
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    mkInterview(base, 60),
			b:    mkInterview(base.Add(60*time.Minute), 60),
			want: false,
		},
		{
			name: "fully disjoint does not overlap",
			a:    mkInterview(base, 30),
			b:    mkInterview(base.Add(2*time.Hour), 30),
			want: false,
		},
		{
			name: "b nested inside a overlaps",
			a:    mkInterview(base, 120),
			b:    mkInterview(base.Add(30*time.Minute), 15),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestCanTransitionStatus(t *testing.T) {
	assert.True(t, CanTransitionStatus(StatusScheduled, StatusInProgress))
	assert.True(t, CanTransitionStatus(StatusScheduled, StatusCancelled))
	assert.True(t, CanTransitionStatus(StatusRescheduled, StatusScheduled))
	assert.False(t, CanTransitionStatus(StatusCompleted, StatusInProgress))
	assert.False(t, CanTransitionStatus(StatusCancelled, StatusScheduled))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, TerminalStatuses[StatusCompleted])
	assert.True(t, TerminalStatuses[StatusCancelled])
	assert.False(t, TerminalStatuses[StatusScheduled])
}
