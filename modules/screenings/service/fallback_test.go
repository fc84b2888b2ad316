package service

import (
	"testing"

	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/stretchr/testify/assert"
)

func TestFallbackAnalysis_CountsKnownSkills(t *testing.T) {
	resume := "Senior engineer with Java, Python and Docker experience, built microservices on AWS."
	result := fallbackAnalysis(resume)

	assert.InDelta(t, 5.0, result.Experience, 0.0001)
	assert.Contains(t, result.Skills, "java")
	assert.Contains(t, result.Skills, "docker")
	assert.Equal(t, model.RecommendationMaybe, result.Recommendation)
}

func TestFallbackAnalysis_JuniorWithNoSkillsStaysMaybe(t *testing.T) {
	resume := "Junior intern looking for their first role."
	result := fallbackAnalysis(resume)

	assert.InDelta(t, 1.0, result.Experience, 0.0001)
	assert.Equal(t, 40, result.MatchScore)
	assert.Equal(t, model.RecommendationMaybe, result.Recommendation)
}

func TestFallbackAnalysis_EducationDetection(t *testing.T) {
	assert.Equal(t, "Master's degree or higher", fallbackAnalysis("Has a Master's in CS").Education)
	assert.Equal(t, "Bachelor's degree", fallbackAnalysis("Holds a Bachelor's degree").Education)
	assert.Equal(t, "unknown", fallbackAnalysis("No formal education listed").Education)
}

func TestFallbackAnalysis_MatchScoreCapsBonus(t *testing.T) {
	resume := "java python javascript react spring sql aws docker kubernetes git api microservices"
	result := fallbackAnalysis(resume)
	assert.Equal(t, fallbackMatchScoreBase+fallbackMatchScoreCap, result.MatchScore)
}
