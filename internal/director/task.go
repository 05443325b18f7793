package director

import (
	"sync"

	"github.com/google/uuid"
)

// Status is a task's lifecycle state. Transitions are monotonic:
// pending → running → completed|failed, never backward.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func statusRank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusRunning:
		return 1
	case StatusCompleted, StatusFailed:
		return 2
	default:
		return -1
	}
}

// Task wraps one Command with identity and status. Parallel is part of
// the wire schema but reserved: the scheduler never reads it and no
// semantics are defined for it.
type Task struct {
	ID       string  `json:"id"`
	Command  Command `json:"command"`
	Parallel bool    `json:"parallel,omitempty"`

	mu     sync.Mutex
	status Status
}

// NewTask wraps a command with a fresh identity in pending state.
func NewTask(cmd Command) *Task {
	return &Task{
		ID:      uuid.NewString(),
		Command: cmd,
		status:  StatusPending,
	}
}

// WrapTasks wraps a command list into tasks, preserving order.
func WrapTasks(cmds []Command) []*Task {
	tasks := make([]*Task, len(cmds))
	for i, c := range cmds {
		tasks[i] = NewTask(c)
	}
	return tasks
}

// Status returns the current lifecycle state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// setStatus advances the status; regressions are ignored.
func (t *Task) setStatus(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if statusRank(s) <= statusRank(t.status) {
		return
	}
	t.status = s
}
