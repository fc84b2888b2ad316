package model

// SubmitFeedbackRequest is the input to the feedback submit operation.
type SubmitFeedbackRequest struct {
	InterviewID    string         `json:"interviewId" binding:"required"`
	InterviewerID  string         `json:"interviewerId" binding:"required"`
	Technical      *int           `json:"technical" binding:"required"`
	Communication  *int           `json:"communication" binding:"required"`
	ProblemSolving *int           `json:"problemSolving" binding:"required"`
	CulturalFit    *int           `json:"culturalFit"`
	Strengths      *string        `json:"strengths"`
	Weaknesses     *string        `json:"weaknesses"`
	Comments       *string        `json:"comments"`
	Recommendation Recommendation `json:"recommendation" binding:"required"`
}


// DTO is the JSON-facing projection of a Feedback.
type DTO struct {
	ID             string         `json:"id"`
	InterviewID    string         `json:"interviewId"`
	InterviewerID  string         `json:"interviewerId"`
	Technical      int            `json:"technical"`
	Communication  int            `json:"communication"`
	ProblemSolving int            `json:"problemSolving"`
	CulturalFit    *int           `json:"culturalFit,omitempty"`
	Strengths      *string        `json:"strengths,omitempty"`
	Weaknesses     *string        `json:"weaknesses,omitempty"`
	Comments       *string        `json:"comments,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
	OverallScore   float64        `json:"overallScore"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func (f *Feedback) ToDTO() *DTO {
	return &DTO{
		ID:             f.ID,
		InterviewID:    f.InterviewID,
		InterviewerID:  f.InterviewerID,
		Technical:      f.Technical,
		Communication:  f.Communication,
		ProblemSolving: f.ProblemSolving,
		CulturalFit:    f.CulturalFit,
		Strengths:      f.Strengths,
		Weaknesses:     f.Weaknesses,
		Comments:       f.Comments,
		Recommendation: f.Recommendation,
		OverallScore:   f.OverallScore(),
		CreatedAt:      f.CreatedAt.Format(timeLayout),
		UpdatedAt:      f.UpdatedAt.Format(timeLayout),
	}
}
