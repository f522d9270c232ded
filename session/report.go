package session

import "github.com/samber/mo"

// JobStatus is the lifecycle phase of a download job.
type JobStatus int

const (
	Idle JobStatus = iota
	Queued
	Processing
	Completed
	Failed
)

var jobStatusNames = map[JobStatus]string{
	Idle:       "idle",
	Queued:     "queued",
	Processing: "processing",
	Completed:  "completed",
	Failed:     "failed",
}

func (s JobStatus) String() string {
	return jobStatusNames[s]
}

// Terminal reports whether no further transition can happen.
func (s JobStatus) Terminal() bool {
	return s == Completed || s == Failed
}

// Report is the observable view of the last job submitted from a context.
type Report struct {
	Status   JobStatus
	TaskID   string
	Progress float64
	Speed    mo.Option[float64]
	ETA      mo.Option[float64]

	// Locators holds the retrieval URL of every produced file, in delivery order.
	Locators []string
	// SaveURL is the canonical locator, the first produced file.
	SaveURL string
	Error   string
}

// Busy reports whether a job is queued or running.
func (r Report) Busy() bool {
	return r.Status == Queued || r.Status == Processing
}
