package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hradmin/recruitment-api/internal/models"
)

func TestCompletionPercentage(t *testing.T) {
	assignments := func(statuses ...models.AssignmentStatus) []models.TaskAssignment {
		out := make([]models.TaskAssignment, len(statuses))
		for i, s := range statuses {
			out[i].Status = s
		}
		return out
	}

	t.Run("no assignments means zero", func(t *testing.T) {
		assert.Zero(t, CompletionPercentage(nil))
	})

	t.Run("only done counts", func(t *testing.T) {
		got := CompletionPercentage(assignments(
			models.AssignmentDone,
			models.AssignmentFailed,
			models.AssignmentInProgress,
			models.AssignmentNotStarted,
		))
		assert.Equal(t, 25.0, got)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		got := CompletionPercentage(assignments(
			models.AssignmentDone,
			models.AssignmentNotStarted,
			models.AssignmentNotStarted,
		))
		assert.Equal(t, 33.3, got)
	})

	t.Run("all done is a full hundred", func(t *testing.T) {
		got := CompletionPercentage(assignments(models.AssignmentDone, models.AssignmentDone))
		assert.Equal(t, 100.0, got)
	})
}

func TestProgressChartFor(t *testing.T) {
	chart := ProgressChartFor(33.3)
	assert.Equal(t, 33.3, chart.Done)
	assert.Equal(t, 66.7, chart.Remaining)

	empty := ProgressChartFor(0)
	assert.Equal(t, 100.0, empty.Remaining)
}
