package scheduler

import "fmt"

// ConflictingTaskSet is raised by SubmitTasks when a non-zombie manager
// already owns the given stage id under a different task-set identity.
type ConflictingTaskSet struct {
	StageID int
}

func (e *ConflictingTaskSet) Error() string {
	return fmt.Sprintf("scheduler: stage %d already has a non-zombie task set", e.StageID)
}
