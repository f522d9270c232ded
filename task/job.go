package task

import (
	"context"
	"sync"

	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/samber/mo"
)

// Snapshot is the state of a job at one point of its life.
type Snapshot struct {
	TaskID   string
	Status   session.JobStatus
	Progress float64
	Speed    mo.Option[float64]
	ETA      mo.Option[float64]
	FileIDs  []string
	Err      error
}

// Job is a submitted download. Its status changes only through polling.
type Job struct {
	context platform.Mode
	taskID  string

	mu       sync.Mutex
	snapshot Snapshot
	delivery error

	updates chan Snapshot
	cancel  context.CancelFunc
	polled  chan struct{}
	done    chan struct{}
}

func newJob(id platform.Mode, taskID string, cancel context.CancelFunc) *Job {
	job := &Job{
		context:  id,
		taskID:   taskID,
		snapshot: Snapshot{TaskID: taskID, Status: session.Queued},
		updates:  make(chan Snapshot, 1),
		cancel:   cancel,
		polled:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	job.updates <- job.snapshot
	return job
}

// TaskID is the identifier assigned by the service.
func (j *Job) TaskID() string {
	return j.taskID
}

// Context is the platform context the job was submitted from.
func (j *Job) Context() platform.Mode {
	return j.context
}

// Snapshot returns the latest state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshot
}

// Updates yields state changes and is closed once the job is over.
// Only the latest pending snapshot is kept, so a slow reader may skip progress
// updates but always observes the final one.
func (j *Job) Updates() <-chan Snapshot {
	return j.updates
}

// Done is closed once polling has stopped and every delivery has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel stops polling. No status request is sent afterwards.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job is over and returns its final state. The error
// is the JobError of a failed job or any delivery failure.
func (j *Job) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-ctx.Done():
		return j.Snapshot(), ctx.Err()
	case <-j.done:
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.snapshot.Err != nil {
		return j.snapshot, j.snapshot.Err
	}
	return j.snapshot, j.delivery
}

// transition applies f unless the job already reached a terminal state.
func (j *Job) transition(f func(Snapshot) Snapshot) (Snapshot, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.snapshot.Status.Terminal() {
		return j.snapshot, false
	}
	j.snapshot = f(j.snapshot)
	j.push(j.snapshot)
	return j.snapshot, true
}

// push replaces any unread snapshot with s. Callers hold j.mu.
func (j *Job) push(s Snapshot) {
	select {
	case <-j.updates:
	default:
	}
	select {
	case j.updates <- s:
	default:
	}
}

func (j *Job) finish(deliveryErr error) {
	j.mu.Lock()
	j.delivery = deliveryErr
	close(j.updates)
	j.mu.Unlock()
	close(j.done)
}
