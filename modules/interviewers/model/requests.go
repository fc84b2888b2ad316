package model

// CreateInterviewerRequest creates a new interviewer.
type CreateInterviewerRequest struct {
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email" binding:"required,email"`
	Department *string  `json:"department"`
	Title      *string  `json:"title"`
	Expertise  []string `json:"expertise"`
}

// UpdateInterviewerRequest updates the mutable fields of an interviewer.
type UpdateInterviewerRequest struct {
	Name       *string  `json:"name"`
	Department *string  `json:"department"`
	Title      *string  `json:"title"`
	Expertise  []string `json:"expertise"`
}

// SearchFilter is the optional name/email/department/expertise filter
// accepted by GET /api/interviewers/search.
type SearchFilter struct {
	Name       *string
	Email      *string
	Department *string
	Expertise  *string
}
