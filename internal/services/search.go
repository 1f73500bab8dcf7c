package services

import (
	"strings"

	model "study-planner.com/study-planner/internal/models"
)

// FilterBySearch keeps the tasks whose title, description or subject contain
// query, ignoring case. An empty query keeps everything.
func FilterBySearch(tasks []model.Task, query string) []model.Task {
	if query == "" {
		return tasks
	}

	needle := strings.ToLower(query)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesSearch(&t, needle) {
			out = append(out, t)
		}
	}
	return out
}

func matchesSearch(t *model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle) {
		return true
	}
	return t.Subject != nil && strings.Contains(strings.ToLower(*t.Subject), needle)
}
