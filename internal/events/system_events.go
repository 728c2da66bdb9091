package events

import "time"

// JobCompleted reports the outcome of a scheduled job run.
type JobCompleted struct {
	header
	systemFamily
	JobName   string        `json:"job_name"`
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Success   bool          `json:"success"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// NewJobCompleted builds a JobCompleted event.
func NewJobCompleted(jobName string, processed, failed int, success bool, message string, duration time.Duration) JobCompleted {
	return JobCompleted{
		header:    newHeader(),
		JobName:   jobName,
		Processed: processed,
		Failed:    failed,
		Success:   success,
		Message:   message,
		Duration:  duration,
	}
}

func (JobCompleted) EventType() string { return TypeJobCompleted }

// ApplicationStarted is published once the server is ready to accept requests.
type ApplicationStarted struct {
	header
	systemFamily
	Version string `json:"version"`
}

// NewApplicationStarted builds an ApplicationStarted event.
func NewApplicationStarted(version string) ApplicationStarted {
	return ApplicationStarted{header: newHeader(), Version: version}
}

func (ApplicationStarted) EventType() string { return TypeApplicationStarted }
