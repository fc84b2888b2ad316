package model

import "github.com/jobber-ats/core/modules/audit/model"

// StageCount is the number of candidates currently sitting in one
// pipeline stage.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// TopCandidate is one row of the top-N-by-screening-score leaderboard.
type TopCandidate struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	MatchScore  int    `json:"matchScore"`
}

// StageAverageScore is the mean AIScreening.matchScore for candidates
// currently sitting in a given stage.
type StageAverageScore struct {
	Stage        string  `json:"stage"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}

// Funnel is the hiring funnel: per-stage counts plus the overall
// conversion ratio HIRED / total candidates.
type Funnel struct {
	Stages            []StageCount `json:"stages"`
	TotalCandidates   int          `json:"totalCandidates"`
	Hired             int          `json:"hired"`
	OverallConversion float64      `json:"overallConversion"`
}

// Overview is the single composite projection the dashboard surfaces:
// every read-only aggregate in one payload, cached behind a short TTL.
type Overview struct {
	TotalCandidates          int                 `json:"totalCandidates"`
	CandidatesThisMonth      int                 `json:"candidatesThisMonth"`
	InterviewsScheduledToday int                 `json:"interviewsScheduledToday"`
	CompletedWithoutFeedback int                 `json:"completedWithoutFeedback"`
	CandidatesByStage        []StageCount        `json:"candidatesByStage"`
	RecentStageChanges       []model.StageChange `json:"recentStageChanges"`
	TopCandidates            []TopCandidate      `json:"topCandidates"`
	AverageScoreByStage      []StageAverageScore `json:"averageScoreByStage"`
	Funnel                   Funnel              `json:"funnel"`
}
