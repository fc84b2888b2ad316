package model

// CreateCandidateRequest is bound from the multipart form fields of
// POST /api/candidates (name, email, phone?, resume file?).
type CreateCandidateRequest struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Phone string `form:"phone"`
}

// UpdateProfileRequest updates the mutable parts of a candidate's
// profile; email is immutable once the candidate is created.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// SearchFilter is the optional name/email/stage filter accepted by
// GET /api/candidates/search.
type SearchFilter struct {
	Name  *string
	Email *string
	Stage *Stage
}

// DTO is the JSON-facing projection of a Candidate.
type DTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	ResumeBlobRef *string `json:"resumeBlobRef,omitempty"`
	CurrentStage  Stage   `json:"currentStage"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func (c *Candidate) ToDTO() *DTO {
	return &DTO{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		ResumeBlobRef: c.ResumeBlobRef,
		CurrentStage:  c.CurrentStage,
		CreatedAt:     c.CreatedAt.Format(timeLayout),
		UpdatedAt:     c.UpdatedAt.Format(timeLayout),
	}
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"
