package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedback_OverallScore(t *testing.T) {
	t.Run("averages three scores when cultural fit is absent", func(t *testing.T) {
		f := &Feedback{Technical: 8, Communication: 6, ProblemSolving: 7}
		assert.InDelta(t, 7.0, f.OverallScore(), 0.0001)
	})

	t.Run("averages four scores when cultural fit is present", func(t *testing.T) {
		cf := 9
		f := &Feedback{Technical: 8, Communication: 6, ProblemSolving: 7, CulturalFit: &cf}
		assert.InDelta(t, 7.5, f.OverallScore(), 0.0001)
	})
}

func TestValidRecommendation(t *testing.T) {
	assert.True(t, ValidRecommendation(RecommendationStrongHire))
	assert.True(t, ValidRecommendation(RecommendationNoHire))
	assert.False(t, ValidRecommendation(Recommendation("UNSURE")))
}
