package services

import (
	"math"

	"hradmin/recruitment-api/internal/models"
)

// CompletionPercentage is the share of done assignments, rounded to one
// decimal place. No assignments means 0, not NaN.
func CompletionPercentage(assignments []models.TaskAssignment) float64 {
	if len(assignments) == 0 {
		return 0
	}
	done := 0
	for _, a := range assignments {
		if a.Status == models.AssignmentDone {
			done++
		}
	}
	percent := float64(done) / float64(len(assignments)) * 100
	return math.Round(percent*10) / 10
}

// ProgressChart precomputes the done/remaining pie slices the panel
// renders verbatim.
func ProgressChartFor(percent float64) models.ProgressChart {
	return models.ProgressChart{
		Done:      percent,
		Remaining: math.Round((100-percent)*10) / 10,
	}
}
