package model

import "time"

// Status is an interview's position in its lifecycle.
type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusRescheduled Status = "RESCHEDULED"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
)

// allowedStatusTransitions is the closed transition table. RESCHEDULED
// is a momentary surface state: a reschedule appends a transition to
// RESCHEDULED immediately followed, in the same transaction, by a
// synthetic transition back to SCHEDULED, so the history retains both
// records but the surface status never rests on RESCHEDULED.
var allowedStatusTransitions = map[Status][]Status{
	StatusScheduled:   {StatusInProgress, StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled},
	StatusCompleted:   {},
	StatusCancelled:   {},
}

// TerminalStatuses are the statuses excluded from overlap and
// scheduling-conflict consideration.
var TerminalStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusCancelled: true,
}

func CanTransitionStatus(from, to Status) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	_, ok := allowedStatusTransitions[s]
	return ok
}

// Interview is a scheduled meeting between a candidate and an
// interviewer.
type Interview struct {
	ID            string
	CandidateID   string
	InterviewerID string
	ScheduledAt   time.Time
	DurationMin   int
	Type          string
	Location      *string
	Notes         *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EndsAt is the half-open interval's exclusive upper bound.
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMin) * time.Minute)
}

// Overlaps reports whether i and other occupy any common instant under
// the half-open interval rule: [s1, s1+d1) and [s2, s2+d2) overlap iff
// s1 < s2+d2 && s1+d1 > s2. Back-to-back intervals do not overlap.
func (i *Interview) Overlaps(other *Interview) bool {
	return i.ScheduledAt.Before(other.EndsAt()) && i.EndsAt().After(other.ScheduledAt)
}
