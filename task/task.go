// Package task submits download jobs, follows them to completion and hands
// the produced files over in a paced sequence.
package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/downify/downify/api"
	"github.com/downify/downify/log"
	"github.com/downify/downify/platform"
	"github.com/downify/downify/session"
	"github.com/downify/downify/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Service is the part of the service API used by jobs. It is satisfied by *api.Client.
type Service interface {
	Queue(ctx context.Context, request api.QueueRequest) (*api.QueueResponse, error)
	Status(ctx context.Context, taskID string) (*api.StatusResponse, error)
	FileURL(fileID string) string
}

// Orchestrator runs at most one job per context and mirrors each job into the store.
type Orchestrator struct {
	store   *session.Store
	service Service
	deliver Deliverer

	interval    time.Duration
	stagger     time.Duration
	maxFailures int

	// ctx outlives individual jobs and bounds deliveries.
	ctx   context.Context
	close context.CancelFunc

	mu   sync.Mutex
	jobs map[platform.Mode]*Job
	// claims counts submissions per context. Only the latest claim may store a job.
	claims map[platform.Mode]uint64
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithPollInterval sets the status polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.interval = d
	}
}

// WithStagger sets the delay between consecutive file deliveries.
func WithStagger(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.stagger = d
	}
}

// WithMaxPollFailures fails a job after n consecutive failed status requests. Zero never gives up.
func WithMaxPollFailures(n int) Option {
	return func(o *Orchestrator) {
		o.maxFailures = n
	}
}

// WithDeliverer sets what happens to each produced file.
func WithDeliverer(d Deliverer) Option {
	return func(o *Orchestrator) {
		o.deliver = d
	}
}

// New creates an Orchestrator publishing into store.
func New(store *session.Store, service Service, options ...Option) *Orchestrator {
	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		store:       store,
		service:     service,
		deliver:     func(context.Context, Delivery) error { return nil },
		interval:    500 * time.Millisecond,
		stagger:     800 * time.Millisecond,
		maxFailures: 240,
		ctx:         ctx,
		close:       cancel,
		jobs:        make(map[platform.Mode]*Job),
		claims:      make(map[platform.Mode]uint64),
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// Submit validates s, queues it and starts polling. A previous job of the same
// context stops being polled. Blank URLs fail with ErrValidation before any request is made.
// When another submission or Forget claims the context before the service
// answers, the queued job is dropped and ErrSuperseded is returned.
func (o *Orchestrator) Submit(ctx context.Context, s Submission) (*Job, error) {
	request, err := BuildRequest(s)
	if err != nil {
		o.store.Notify(session.Error, MessageInvalidURL)
		return nil, err
	}

	claim := o.claim(s.Context)
	o.forget(s.Context)
	o.store.Notify(session.Info, MessageStarting)
	o.store.ClearReport(s.Context)

	entry := log.WithFields(log.Fields{
		"context":  s.Context,
		"platform": request.Platform,
		"type":     request.Type,
		"quality":  request.Quality,
	})
	entry.Info("queueing " + request.URL)

	response, err := o.service.Queue(ctx, request)
	if err != nil {
		entry.Error(err)
		if !o.claimed(s.Context, claim) {
			return nil, fmt.Errorf("submit: %w", ErrSuperseded)
		}
		if errors.Is(err, api.ErrLookup) {
			o.store.Notify(session.Error, MessageQueueFailed)
		} else {
			o.store.Notify(session.Error, MessageConnection)
		}
		return nil, fmt.Errorf("submit: %w", err)
	}

	jobCtx, cancel := context.WithCancel(o.ctx)
	job := newJob(s.Context, response.TaskID, cancel)

	o.mu.Lock()
	if o.claims[s.Context] != claim || o.ctx.Err() != nil {
		o.mu.Unlock()
		cancel()
		entry.WithField("task", job.taskID).Info("submission superseded")
		return nil, fmt.Errorf("submit: %w", ErrSuperseded)
	}
	previous, replaced := o.jobs[s.Context]
	o.jobs[s.Context] = job
	o.mu.Unlock()

	if replaced {
		previous.Cancel()
		<-previous.polled
	}

	entry.WithField("task", job.taskID).Info("job queued")
	o.publish(job, job.Snapshot())

	go o.run(jobCtx, job)
	return job, nil
}

// claim starts a new submission generation for a context.
func (o *Orchestrator) claim(id platform.Mode) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.claims[id]++
	return o.claims[id]
}

func (o *Orchestrator) claimed(id platform.Mode, claim uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.claims[id] == claim
}

// Job returns the current job of a context.
func (o *Orchestrator) Job(id platform.Mode) (*Job, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	job, ok := o.jobs[id]
	return job, ok
}

// Forget stops polling the job of a context and drops it. A report of a job
// that did not finish is cleared. Deliveries already started continue.
// A submission of the context still waiting on the service is dropped too.
func (o *Orchestrator) Forget(id platform.Mode) {
	o.claim(id)
	o.forget(id)
}

func (o *Orchestrator) forget(id platform.Mode) {
	o.mu.Lock()
	job, ok := o.jobs[id]
	delete(o.jobs, id)
	o.mu.Unlock()

	if !ok {
		return
	}

	job.Cancel()
	<-job.polled
	if !job.Snapshot().Status.Terminal() {
		o.store.ClearReport(id)
	}
}

// Close cancels every job and pending delivery.
func (o *Orchestrator) Close() {
	o.close()

	o.mu.Lock()
	jobs := lo.Values(o.jobs)
	o.jobs = make(map[platform.Mode]*Job)
	o.mu.Unlock()

	for _, job := range jobs {
		<-job.polled
	}
}

func (o *Orchestrator) run(ctx context.Context, job *Job) {
	final := o.poll(ctx, job)
	close(job.polled)

	var deliveryErr error
	if final.Status == session.Completed && ctx.Err() == nil {
		plan := Schedule(final.FileIDs, o.stagger, o.service.FileURL)
		deliveryErr = Run(o.ctx, plan, o.stagger, o.deliver)
	}
	job.finish(deliveryErr)
}

// poll requests the job status on every tick until a terminal status is seen
// or ctx ends. Requests are sequential, ticks arriving during one are dropped.
func (o *Orchestrator) poll(ctx context.Context, job *Job) Snapshot {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	entry := log.WithFields(log.Fields{"context": job.context, "task": job.taskID})
	failures := 0

	for {
		select {
		case <-ctx.Done():
			entry.Info("polling cancelled")
			return job.Snapshot()
		case <-ticker.C:
		}

		if ctx.Err() != nil {
			return job.Snapshot()
		}

		status, err := o.service.Status(ctx, job.taskID)
		if err != nil {
			if ctx.Err() != nil {
				return job.Snapshot()
			}

			failures++
			entry.WithField("failures", failures).Debug(err)
			if o.maxFailures > 0 && failures >= o.maxFailures {
				return o.fail(ctx, job, MessageConnection)
			}
			continue
		}
		failures = 0

		switch status.Status {
		case api.StatusProcessing:
			o.progress(ctx, job, status)
		case api.StatusCompleted:
			return o.complete(ctx, job, status)
		case api.StatusFailed:
			return o.fail(ctx, job, status.Error)
		}
	}
}

func (o *Orchestrator) progress(ctx context.Context, job *Job, status *api.StatusResponse) {
	snapshot, ok := job.transition(func(s Snapshot) Snapshot {
		s.Status = session.Processing
		s.Progress = util.Clamp(lo.FromPtr(status.Progress), 0, 100)
		s.Speed = mo.PointerToOption(status.Speed)
		s.ETA = mo.PointerToOption(status.ETA)
		return s
	})
	if !ok || ctx.Err() != nil {
		return
	}

	o.publish(job, snapshot)
	o.store.Notify(session.Info, fmt.Sprintf("Downloading... %d%%", int(math.Round(snapshot.Progress))))
}

func (o *Orchestrator) complete(ctx context.Context, job *Job, status *api.StatusResponse) Snapshot {
	snapshot, ok := job.transition(func(s Snapshot) Snapshot {
		s.Status = session.Completed
		s.Progress = 100
		s.FileIDs = status.FileIDs()
		return s
	})
	if !ok || ctx.Err() != nil {
		return snapshot
	}

	log.WithFields(log.Fields{"task": job.taskID, "files": len(snapshot.FileIDs)}).Info("job completed")
	o.publish(job, snapshot)
	o.store.Notify(session.Success, MessageComplete)
	return snapshot
}

func (o *Orchestrator) fail(ctx context.Context, job *Job, message string) Snapshot {
	if message == "" {
		message = MessageFailed
	}

	snapshot, ok := job.transition(func(s Snapshot) Snapshot {
		s.Status = session.Failed
		s.Err = &JobError{Message: message}
		return s
	})
	if !ok || ctx.Err() != nil {
		return snapshot
	}

	log.WithField("task", job.taskID).Warn(message)
	o.publish(job, snapshot)
	o.store.Notify(session.Error, message)
	return snapshot
}

// publish mirrors the snapshot into the store report of the job's context.
func (o *Orchestrator) publish(job *Job, s Snapshot) {
	report := session.Report{
		Status:   s.Status,
		TaskID:   s.TaskID,
		Progress: s.Progress,
		Speed:    s.Speed,
		ETA:      s.ETA,
		Locators: lo.Map(s.FileIDs, func(id string, _ int) string {
			return o.service.FileURL(id)
		}),
	}

	if len(report.Locators) > 0 {
		report.SaveURL = report.Locators[0]
	}

	var jobErr *JobError
	if errors.As(s.Err, &jobErr) {
		report.Error = jobErr.Message
	}

	o.store.SetReport(job.context, report)
}

// DisplayProgress is the progress shown for a report: never below floor while
// processing and never above 100.
func DisplayProgress(r session.Report, floor float64) float64 {
	progress := util.Clamp(r.Progress, 0, 100)
	if r.Status == session.Processing {
		return util.Max(progress, floor)
	}
	return progress
}
