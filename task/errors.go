package task

import "errors"

// User-facing messages of the download flow.
const (
	MessageInvalidURL  = "Please enter a valid URL"
	MessageStarting    = "Starting Download..."
	MessageQueueFailed = "Failed to start download"
	MessageConnection  = "Connection Error"
	MessageComplete    = "Download Complete!"
	MessageFailed      = "Download failed"
)

// ErrValidation is returned for submissions that cannot be sent.
var ErrValidation = errors.New("invalid url")

// ErrSuperseded is returned when a newer submission or Forget claimed the
// context while the request was being queued. The queued job is not followed.
var ErrSuperseded = errors.New("submission superseded")

// JobError is the failure reported by the service for a job.
type JobError struct {
	Message string
}

func (e *JobError) Error() string {
	if e.Message == "" {
		return MessageFailed
	}
	return e.Message
}
