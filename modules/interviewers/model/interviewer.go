package model

import "time"

// Interviewer is a staff member who can be assigned to interviews.
type Interviewer struct {
	ID         string
	Name       string
	Email      string
	Department *string
	Title      *string
	Expertise  []string
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DTO is the JSON-facing projection of an Interviewer.
type DTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department *string  `json:"department,omitempty"`
	Title      *string  `json:"title,omitempty"`
	Expertise  []string `json:"expertise,omitempty"`
	Archived   bool     `json:"archived"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func (i *Interviewer) ToDTO() *DTO {
	return &DTO{
		ID:         i.ID,
		Name:       i.Name,
		Email:      i.Email,
		Department: i.Department,
		Title:      i.Title,
		Expertise:  i.Expertise,
		Archived:   i.Archived,
		CreatedAt:  i.CreatedAt.Format(timeLayout),
		UpdatedAt:  i.UpdatedAt.Format(timeLayout),
	}
}
