package model

import "time"

// Recommendation is the orchestrator's hiring recommendation, parsed
// from the model response or produced by the fallback analyzer.
type Recommendation string

const (
	RecommendationStrongHire Recommendation = "STRONG_HIRE"
	RecommendationHire       Recommendation = "HIRE"
	RecommendationMaybe      Recommendation = "MAYBE"
	RecommendationNoHire     Recommendation = "NO_HIRE"
)

// AIScreening is one resume-screening result attached to a candidate.
type AIScreening struct {
	ID             string
	CandidateID    string
	Skills         string
	Experience     float64
	Education      string
	CulturalFit    string
	MatchScore     int
	Analysis       string
	Recommendation Recommendation
	ModelUsed      string
	ProcessingMs   int64
	Fallback       bool
	CreatedAt      time.Time
}
