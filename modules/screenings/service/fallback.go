package service

import (
	"strings"

	"github.com/jobber-ats/core/modules/screenings/model"
)

var technicalKeywords = []string{
	"java", "python", "javascript", "react", "spring", "sql",
	"aws", "docker", "kubernetes", "git", "api", "microservices",
}

const (
	fallbackMatchScoreBase = 40
	fallbackMatchScoreCap  = 30
	fallbackScorePerSkill  = 5
)

// fallbackAnalysis is the deterministic keyword-heuristic screening used
// whenever the model call fails or its response cannot be parsed. It
// always produces a result.
func fallbackAnalysis(resumeText string) *parsedResult {
	lower := strings.ToLower(resumeText)

	skillCount := 0
	var found []string
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			skillCount++
			found = append(found, kw)
		}
	}

	experience := 3.0
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead"):
		experience = 5.0
	case strings.Contains(lower, "junior") || strings.Contains(lower, "intern"):
		experience = 1.0
	}

	education := "unknown"
	switch {
	case strings.Contains(lower, "master") || strings.Contains(lower, "phd"):
		education = "Master's degree or higher"
	case strings.Contains(lower, "bachelor") || strings.Contains(lower, "b.tech") || strings.Contains(lower, "b.e"):
		education = "Bachelor's degree"
	}

	bonus := fallbackScorePerSkill * skillCount
	if bonus > fallbackMatchScoreCap {
		bonus = fallbackMatchScoreCap
	}
	matchScore := fallbackMatchScoreBase + bonus

	recommendation := model.RecommendationMaybe
	if matchScore >= 70 {
		recommendation = model.RecommendationHire
	}

	return &parsedResult{
		Skills:         strings.Join(found, ", "),
		Experience:     experience,
		Education:      education,
		CulturalFit:    "Teamwork: Medium, Leadership: Medium, Communication: Medium",
		MatchScore:     matchScore,
		Analysis:       "Generated by keyword heuristic fallback analyzer.",
		Recommendation: recommendation,
	}
}
