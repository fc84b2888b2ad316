package model

import "time"

// ScheduleRequest is the input to the schedule operation.
type ScheduleRequest struct {
	CandidateID   string    `json:"candidateId" binding:"required"`
	InterviewerID string    `json:"interviewerId" binding:"required"`
	ScheduledAt   time.Time `json:"scheduledAt" binding:"required"`
	DurationMin   int       `json:"durationMin" binding:"required"`
	Type          string    `json:"type" binding:"required"`
	Location      *string   `json:"location"`
	Notes         *string   `json:"notes"`
	Who           string    `json:"who" binding:"required"`
}

// RescheduleRequest is the input to the reschedule operation.
type RescheduleRequest struct {
	NewScheduledAt time.Time `json:"newScheduledAt" binding:"required"`
	NewDurationMin *int      `json:"newDurationMin"`
	Who            string    `json:"who" binding:"required"`
	Reason         string    `json:"reason"`
}

// CancelRequest is the input to the cancel operation.
type CancelRequest struct {
	Who    string `json:"who" binding:"required"`
	Reason string `json:"reason"`
}

// TransitionStatusRequest directly drives the status machine (used for
// IN_PROGRESS / COMPLETED transitions outside of schedule/cancel).
type TransitionStatusRequest struct {
	Status Status  `json:"status" binding:"required"`
	Who    string  `json:"who" binding:"required"`
	Notes  *string `json:"notes"`
}

// DTO is the JSON-facing projection of an Interview.
type DTO struct {
	ID            string  `json:"id"`
	CandidateID   string  `json:"candidateId"`
	InterviewerID string  `json:"interviewerId"`
	ScheduledAt   string  `json:"scheduledAt"`
	DurationMin   int     `json:"durationMin"`
	Type          string  `json:"type"`
	Location      *string `json:"location,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        Status  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func (i *Interview) ToDTO() *DTO {
	return &DTO{
		ID:            i.ID,
		CandidateID:   i.CandidateID,
		InterviewerID: i.InterviewerID,
		ScheduledAt:   i.ScheduledAt.Format(timeLayout),
		DurationMin:   i.DurationMin,
		Type:          i.Type,
		Location:      i.Location,
		Notes:         i.Notes,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt.Format(timeLayout),
		UpdatedAt:     i.UpdatedAt.Format(timeLayout),
	}
}
