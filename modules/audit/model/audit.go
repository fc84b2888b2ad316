package model

import "time"

// StageChange is an immutable record of a candidate's pipeline
// transition. Always written in the same transaction that mutates
// Candidate.currentStage.
type StageChange struct {
	ID          string
	CandidateID string
	FromState   *string
	ToState     string
	ChangedBy   string
	Reason      *string
	ChangedAt   time.Time
}

// StatusChange is an immutable record of an interview's lifecycle
// transition. Always written in the same transaction that mutates
// Interview.currentStatus.
type StatusChange struct {
	ID          string
	InterviewID string
	FromState   *string
	ToState     string
	ChangedBy   string
	Notes       *string
	ChangedAt   time.Time
}

// StageDuration is one row of the average-time-in-stage analytic: the
// mean time, in seconds, candidates spend in a given stage before
// transitioning out of it.
type StageDuration struct {
	Stage          string  `json:"stage"`
	AverageSeconds float64 `json:"averageSeconds"`
	Samples        int     `json:"samples"`
}
