package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but the request has not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the file is being fetched
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the file was saved and handed to the share action
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusOpened means the URL was opened directly (web platform)
	TaskStatusOpened TaskStatus = "Opened"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusDownloading
}

// IsFinished returns true if the task is in a finished state (completed, opened, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusOpened || ts == TaskStatusError
}
