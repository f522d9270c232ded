package inline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/downify/downify/fetch"
	"github.com/downify/downify/log"
	"github.com/downify/downify/media"
	"github.com/downify/downify/session"
	"github.com/downify/downify/task"
	"github.com/samber/lo"
)

// Run resolves the URL and, when asked to, downloads it. Results are written to options.Out.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	store := session.New(options.Context, options.Preferences)
	store.SetURL(options.Context, options.URL)

	// Step 1: Resolve the media descriptor.
	fetcher := fetch.New(store, options.Service)
	info, err := fetcher.Fetch(ctx, options.Context, options.URL)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	if r, ok := options.Range.Get(); ok && info.Playlist {
		store.SetRange(options.Context, r)
	}

	entries := FilterEntries(info.Entries, options.Filter)
	output := &Output{
		URL:      options.URL,
		Platform: options.Context.String(),
		Media:    asMedia(info, entries),
	}
	if info.Playlist {
		output.Range = store.Active().Range.String()
	}

	if !options.Download {
		return write(options, output)
	}

	// Step 2: Submit the job and follow it until every file is saved.
	snapshot, files, err := download(ctx, store, options)
	if snapshot.TaskID != "" {
		output.Job = asJob(snapshot, files)
	}

	if writeErr := write(options, output); writeErr != nil {
		return writeErr
	}
	return err
}

func download(ctx context.Context, store *session.Store, options *Options) (task.Snapshot, []File, error) {
	var (
		mu    sync.Mutex
		files []File
	)

	deliver := func(ctx context.Context, d task.Delivery) error {
		path, err := options.Service.Download(ctx, d.FileID, options.Dir)
		mu.Lock()
		defer mu.Unlock()
		files = append(files, File{ID: d.FileID, URL: d.URL, Path: path})
		return err
	}

	taskOptions := []task.Option{
		task.WithDeliverer(deliver),
		task.WithMaxPollFailures(options.MaxPollFailures),
	}
	if options.PollInterval > 0 {
		taskOptions = append(taskOptions, task.WithPollInterval(options.PollInterval))
	}
	if options.Stagger > 0 {
		taskOptions = append(taskOptions, task.WithStagger(options.Stagger))
	}

	orchestrator := task.New(store, options.Service, taskOptions...)
	defer orchestrator.Close()

	job, err := orchestrator.Submit(ctx, task.FromContext(store.Active(), store.Preferences()))
	if err != nil {
		return task.Snapshot{}, nil, err
	}

follow:
	for {
		select {
		case <-ctx.Done():
			job.Cancel()
			break follow
		case snapshot, ok := <-job.Updates():
			if !ok {
				break follow
			}
			log.Debugf("job %s is %s", snapshot.TaskID, snapshot.Status)
			if options.Progress != nil {
				options.Progress(snapshot)
			}
		}
	}

	snapshot, err := job.Wait(ctx)

	mu.Lock()
	defer mu.Unlock()
	ordered := lo.Filter(lo.Map(snapshot.FileIDs, func(id string, _ int) File {
		found, _ := lo.Find(files, func(f File) bool { return f.ID == id })
		return found
	}), func(f File, _ int) bool {
		return f.ID != ""
	})
	return snapshot, ordered, err
}

func write(options *Options, output *Output) error {
	if options.Json {
		return writeJson(options.Out, output)
	}

	m := output.Media
	fmt.Fprintln(options.Out, m.Title)
	for _, e := range m.Entries {
		fmt.Fprintf(options.Out, "%4d. %s (%s)\n", e.Index, e.Title, media.FormatDuration(e.Duration))
	}

	if output.Job != nil {
		for _, f := range output.Job.Files {
			fmt.Fprintln(options.Out, lo.Ternary(f.Path != "", f.Path, f.URL))
		}
		if output.Job.Error != "" {
			fmt.Fprintln(options.Out, output.Job.Error)
		}
	}

	return nil
}
