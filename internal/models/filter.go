package model

import "study-planner.com/study-planner/internal/constants"

// TaskFilter narrows a user's task collection. Status and Priority take
// FilterAll (or empty) to match everything.
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
}

func (f TaskFilter) StatusPredicate() (constants.TaskStatus, bool) {
	if f.Status == "" || f.Status == constants.FilterAll {
		return "", false
	}
	return constants.TaskStatus(f.Status), true
}

func (f TaskFilter) PriorityPredicate() (constants.Priority, bool) {
	if f.Priority == "" || f.Priority == constants.FilterAll {
		return "", false
	}
	return constants.Priority(f.Priority), true
}
