package constants

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

var statusCycle = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// Next returns the status a task moves to when the user cycles it:
// pending -> in-progress -> completed -> pending. Anything unrecognised
// restarts the cycle at pending.
func (s TaskStatus) Next() TaskStatus {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return StatusPending
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}
