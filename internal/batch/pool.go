// Package batch runs index-addressed tasks on a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch run.
type Config struct {
	Workers  int
	Label    string // stage name used in log fields and errors
	Logger   logrus.FieldLogger
	Interval time.Duration // progress log period, default 2s
}

// Task processes item i. Tasks must write their output into a slot
// addressed by i; completion order is not the item order.
type Task func(ctx context.Context, i int) error

// Run executes task for every index in [0, n). The first failing task
// stops dispatch of further items and its error is returned.
func Run(ctx context.Context, cfg Config, n int, task Task) error {
	if n == 0 {
		return nil
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Logger != nil {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						rate := float64(p) / time.Since(start).Seconds()
						cfg.Logger.WithFields(logrus.Fields{
							"stage": cfg.Label,
							"done":  p,
							"total": n,
						}).Infof("%.1f items/sec", rate)
					}
				}
			}
		}()
	}
	defer close(done)

	g, gctx := errgroup.WithContext(ctx)
	itemChan := make(chan int, workers*2)

	// Send work
	g.Go(func() error {
		defer close(itemChan)
		for i := 0; i < n; i++ {
			select {
			case itemChan <- i:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	// Worker pool
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range itemChan {
				if gctx.Err() != nil {
					continue
				}
				if err := task(gctx, idx); err != nil {
					if cfg.Label != "" {
						return fmt.Errorf("%s: item %d: %w", cfg.Label, idx, err)
					}
					return fmt.Errorf("item %d: %w", idx, err)
				}
				processed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// parent cancellation is not an item failure but still aborts the batch
	if err := ctx.Err(); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.WithFields(logrus.Fields{
			"stage":   cfg.Label,
			"total":   n,
			"elapsed": time.Since(start).Round(time.Millisecond).String(),
		}).Debug("batch finished")
	}
	return nil
}
