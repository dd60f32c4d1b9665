package models

import "time"

const (
	StatusCreated    = "Created"
	StatusInProgress = "In Progress"
	StatusBlocked    = "Blocked"
	StatusPostponed  = "Postponed"
	StatusCancelled  = "Cancelled"
	StatusDone       = "Done"
)

// ValidStatus reports whether s is one of the closed set of task
// statuses. There is no transition graph: any status can be set
// from any other via an explicit update.
func ValidStatus(s string) bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusBlocked,
		StatusPostponed, StatusCancelled, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	DueDate     time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
