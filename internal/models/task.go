package model

import (
	"time"

	"study-planner.com/study-planner/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	UserID      string               `gorm:"size:64;not null;index:idx_tasks_owner_created,priority:1" json:"user_id"`
	Title       string               `gorm:"not null" json:"title"`
	Description *string              `json:"description"`
	Subject     *string              `gorm:"size:255" json:"subject"`
	Priority    constants.Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	DueDate     *time.Time           `json:"due_date"`
	IsFavorite  bool                 `gorm:"not null" json:"is_favorite"`
	CreatedAt   time.Time            `gorm:"index:idx_tasks_owner_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	CompletedAt *time.Time           `json:"completed_at"`
}

// Overdue reports whether the task is past its due date and still open.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != constants.StatusCompleted
}

// DueSoon reports whether the due date falls in [now, now+DueSoonWindow).
func (t *Task) DueSoon(now time.Time) bool {
	if t.DueDate == nil || t.DueDate.Before(now) {
		return false
	}
	return t.DueDate.Before(now.Add(constants.DueSoonWindow))
}
