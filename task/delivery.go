package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/downify/downify/log"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

// Delivery is one produced file handed to the user.
type Delivery struct {
	Index  int
	FileID string
	URL    string

	// Offset is the delay after completion at which the delivery is triggered.
	Offset time.Duration
}

// Deliverer retrieves a single file.
type Deliverer func(ctx context.Context, d Delivery) error

// Schedule plans the delivery of fileIDs in order, one every stagger.
func Schedule(fileIDs []string, stagger time.Duration, locate func(fileID string) string) []Delivery {
	return lo.Map(fileIDs, func(id string, i int) Delivery {
		return Delivery{
			Index:  i,
			FileID: id,
			URL:    locate(id),
			Offset: time.Duration(i) * stagger,
		}
	})
}

// Run triggers every delivery of plan at its offset, each in its own goroutine,
// and waits for all of them. Triggers not yet fired when ctx ends are skipped.
func Run(ctx context.Context, plan []Delivery, stagger time.Duration, deliver Deliverer) error {
	limit := rate.Inf
	if stagger > 0 {
		limit = rate.Every(stagger)
	}
	limiter := rate.NewLimiter(limit, 1)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, d := range plan {
		if err := limiter.Wait(ctx); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(d Delivery) {
			defer wg.Done()
			if err := deliver(ctx, d); err != nil {
				log.WithField("file", d.FileID).Warn(err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(d)
	}

	wg.Wait()
	return errors.Join(errs...)
}
