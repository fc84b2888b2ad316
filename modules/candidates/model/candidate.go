package model

import "time"

// Stage is a candidate's position in the six-stage hiring pipeline.
type Stage string

const (
	StageApplied            Stage = "APPLIED"
	StageScreening          Stage = "SCREENING"
	StageInterviewScheduled Stage = "INTERVIEW_SCHEDULED"
	StageInterviewCompleted Stage = "INTERVIEW_COMPLETED"
	StageHired              Stage = "HIRED"
	StageRejected           Stage = "REJECTED"
)

// allowedStageTransitions is the closed pipeline transition table. Every
// candidate mutation, whether initiated directly or as a side effect of
// scheduling or interview completion, is checked against it.
var allowedStageTransitions = map[Stage][]Stage{
	StageApplied:            {StageScreening, StageRejected},
	StageScreening:          {StageInterviewScheduled, StageRejected},
	StageInterviewScheduled: {StageInterviewCompleted, StageRejected},
	StageInterviewCompleted: {StageHired, StageRejected},
	StageHired:              {},
	StageRejected:           {},
}

// CanTransitionStage reports whether from -> to is a legal pipeline move.
func CanTransitionStage(from, to Stage) bool {
	for _, allowed := range allowedStageTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStage reports whether s is one of the six recognized stage values.
func ValidStage(s Stage) bool {
	_, ok := allowedStageTransitions[s]
	return ok
}

// Candidate is one applicant moving through the hiring pipeline.
type Candidate struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	ResumeBlobRef *string
	CurrentStage  Stage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
