package domain

import "time"

// TaskStatus represents the lifecycle stage of a background task.
// Transitions are one-way: pending -> running -> completed|failed.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// IsTerminal returns true if the status represents a final stage.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// TaskKind identifies the unit of work carried by a queue message.
type TaskKind string

const (
	KindScoutReport   TaskKind = "scout_report"
	KindMarketRefresh TaskKind = "market_refresh"
)

// TaskRecord is the status-cache view of a task. It lives in Redis under a
// fixed TTL and is the single source of truth for task state; expiry makes
// the task unobservable regardless of stage.
type TaskRecord struct {
	TaskID    string     `json:"task_id"`
	Kind      TaskKind   `json:"kind"`
	PlayerID  int64      `json:"player_id,omitempty"`
	Status    TaskStatus `json:"status"`
	Result    string     `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskPayload is the queue message handed to the worker.
type TaskPayload struct {
	TaskID     string    `json:"task_id"`
	Kind       TaskKind  `json:"kind"`
	PlayerID   int64     `json:"player_id,omitempty"`
	PlayerIDs  []int64   `json:"player_ids,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// TaskMessage wraps a delivered payload with its broker acknowledgement
// callbacks. The worker pool calls Ack or Nack after processing completes.
type TaskMessage struct {
	Task *TaskPayload
	Ack  func() error
	Nack func(requeue bool) error
}

// SubmitResponse is returned to the caller after a task is accepted.
type SubmitResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
