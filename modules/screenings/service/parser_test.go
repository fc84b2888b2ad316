package service

import (
	"testing"

	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_WellFormed(t *testing.T) {
	text := `SKILLS: Go, Postgres, Kubernetes
EXPERIENCE: 6.5 years
EDUCATION: Bachelor's in Computer Science
CULTURAL_FIT: Teamwork: High, Leadership: Medium
MATCH_SCORE: 82/100
ANALYSIS: Strong backend candidate with relevant production experience.
RECOMMENDATION: STRONG_HIRE`

	result, err := parseResponse(text)
	require.NoError(t, err)
	assert.Equal(t, "Go, Postgres, Kubernetes", result.Skills)
	assert.InDelta(t, 6.5, result.Experience, 0.0001)
	assert.Equal(t, "Bachelor's in Computer Science", result.Education)
	assert.Contains(t, result.CulturalFit, "Teamwork: High")
	assert.Equal(t, 82, result.MatchScore)
	assert.Equal(t, model.RecommendationStrongHire, result.Recommendation)
}

func TestParseResponse_MissingMarker(t *testing.T) {
	text := `SKILLS: Go
EXPERIENCE: 3
EDUCATION: Bachelor's
MATCH_SCORE: 50
ANALYSIS: fine
RECOMMENDATION: HIRE`

	_, err := parseResponse(text)
	assert.ErrorIs(t, err, errUnparseable)
}

func TestParseMatchScore_ClampsToRange(t *testing.T) {
	n, err := parseMatchScore("130 out of 100")
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	n, err = parseMatchScore("-5")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestParseRecommendation_NoHireDoesNotMatchHire(t *testing.T) {
	assert.Equal(t, model.RecommendationNoHire, parseRecommendation("Final call: NO_HIRE"))
	assert.Equal(t, model.RecommendationHire, parseRecommendation("Final call: HIRE"))
	assert.Equal(t, model.RecommendationMaybe, parseRecommendation("unclear signal"))
}
