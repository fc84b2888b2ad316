package model

import "time"

// Recommendation is a panel member's hiring recommendation.
type Recommendation string

const (
	RecommendationStrongHire Recommendation = "STRONG_HIRE"
	RecommendationHire       Recommendation = "HIRE"
	RecommendationMaybe      Recommendation = "MAYBE"
	RecommendationNoHire     Recommendation = "NO_HIRE"
)

func ValidRecommendation(r Recommendation) bool {
	switch r {
	case RecommendationStrongHire, RecommendationHire, RecommendationMaybe, RecommendationNoHire:
		return true
	}
	return false
}

// Feedback is one interviewer's structured assessment of a completed
// interview.
type Feedback struct {
	ID             string
	InterviewID    string
	InterviewerID  string
	Technical      int
	Communication  int
	ProblemSolving int
	CulturalFit    *int
	Strengths      *string
	Weaknesses     *string
	Comments       *string
	Recommendation Recommendation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OverallScore is the arithmetic mean of the present scores: technical,
// communication, problemSolving, and culturalFit when present.
func (f *Feedback) OverallScore() float64 {
	sum := float64(f.Technical + f.Communication + f.ProblemSolving)
	count := 3.0
	if f.CulturalFit != nil {
		sum += float64(*f.CulturalFit)
		count++
	}
	return sum / count
}

// InterviewerStats is the aggregate statistics for one interviewer
// across all feedback they have submitted.
type InterviewerStats struct {
	InterviewerID     string  `json:"interviewerId"`
	MeanTechnical     float64 `json:"meanTechnical"`
	MeanCommunication float64 `json:"meanCommunication"`
	Count             int     `json:"count"`
	StrongHireCount   int     `json:"strongHireCount"`
}

// CandidateAverage is the mean overall score across all feedback
// attached to a candidate's completed interviews.
type CandidateAverage struct {
	CandidateID  string  `json:"candidateId"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}
