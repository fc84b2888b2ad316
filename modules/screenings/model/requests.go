package model

// ScreenRequest is the input to the synchronous and asynchronous
// screening entry points. JobDescription defaults to a generic posting
// when absent.
type ScreenRequest struct {
	CandidateID    string  `json:"candidateId" binding:"required"`
	JobDescription *string `json:"jobDescription"`
}

// BulkScreenRequest fires off asynchronous screening for a batch of
// candidates sharing one job description.
type BulkScreenRequest struct {
	CandidateIDs   []string `json:"candidateIds" binding:"required"`
	JobDescription *string  `json:"jobDescription"`
}

// DTO is the JSON-facing projection of an AIScreening.
type DTO struct {
	ID             string  `json:"id"`
	CandidateID    string  `json:"candidateId"`
	Skills         string  `json:"skills"`
	Experience     float64 `json:"experience"`
	Education      string  `json:"education"`
	CulturalFit    string  `json:"culturalFit"`
	MatchScore     int     `json:"matchScore"`
	Analysis       string  `json:"analysis"`
	Recommendation string  `json:"recommendation"`
	ModelUsed      string  `json:"modelUsed"`
	ProcessingMs   int64   `json:"processingMs"`
	Fallback       bool    `json:"fallback"`
	CreatedAt      string  `json:"createdAt"`
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func (s *AIScreening) ToDTO() *DTO {
	return &DTO{
		ID:             s.ID,
		CandidateID:    s.CandidateID,
		Skills:         s.Skills,
		Experience:     s.Experience,
		Education:      s.Education,
		CulturalFit:    s.CulturalFit,
		MatchScore:     s.MatchScore,
		Analysis:       s.Analysis,
		Recommendation: string(s.Recommendation),
		ModelUsed:      s.ModelUsed,
		ProcessingMs:   s.ProcessingMs,
		Fallback:       s.Fallback,
		CreatedAt:      s.CreatedAt.Format(timeLayout),
	}
}
