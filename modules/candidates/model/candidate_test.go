package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionStage(t *testing.T) {
	tests := []struct {
		name string
		from Stage
		to   Stage
		want bool
	}{
		{"applied to screening is legal", StageApplied, StageScreening, true},
		{"applied to rejected is legal", StageApplied, StageRejected, true},
		{"applied to hired skips the pipeline", StageApplied, StageHired, false},
		{"screening to interview scheduled is legal", StageScreening, StageInterviewScheduled, true},
		{"interview completed to hired is legal", StageInterviewCompleted, StageHired, true},
		{"hired is terminal", StageHired, StageScreening, false},
		{"rejected is terminal", StageRejected, StageApplied, false},
		{"unknown stage has no transitions", Stage("BOGUS"), StageScreening, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionStage(tt.from, tt.to))
		})
	}
}

func TestValidStage(t *testing.T) {
	assert.True(t, ValidStage(StageApplied))
	assert.True(t, ValidStage(StageHired))
	assert.False(t, ValidStage(Stage("NOT_A_STAGE")))
}
