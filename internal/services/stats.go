package services

import (
	"time"

	"study-planner.com/study-planner/internal/constants"
	dto "study-planner.com/study-planner/internal/data_models"
	model "study-planner.com/study-planner/internal/models"
)

// ComputeStats counts tasks by status, plus those overdue as of now.
func ComputeStats(tasks []model.Task, now time.Time) dto.TaskStats {
	stats := dto.TaskStats{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case constants.StatusCompleted:
			stats.Completed++
		case constants.StatusPending:
			stats.Pending++
		case constants.StatusInProgress:
			stats.InProgress++
		}
		if tasks[i].Overdue(now) {
			stats.Overdue++
		}
	}
	return stats
}
