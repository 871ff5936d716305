// Package watch polls an inbox directory for CABS exports on a cron
// schedule and pushes each complete drop through the pipeline.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"cabsbot/internal/pipeline"
)

// Watcher scans InboxDir on each tick, processes every CSV found and
// moves the batch to a processed/ subdirectory so it is not re-sent.
type Watcher struct {
	Pipeline *pipeline.Pipeline
	InboxDir string
	Schedule string
}

// Start launches the scheduler goroutine. The schedule is a standard
// 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 7 * * 1-5" (weekdays 7am), "*/15 8-10 * * *" (every 15
// minutes during the morning drop window).
func (w *Watcher) Start(ctx context.Context) {
	schedule := strings.TrimSpace(w.Schedule)
	if schedule == "" {
		log.Println("Inbox watch disabled (watch_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid watch_schedule '%s': %v, inbox watch disabled", schedule, err)
		return
	}
	log.Printf("Inbox watch scheduled (cron: %s) on %s", schedule, w.InboxDir)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			log.Printf("Next inbox scan at %s (in %s)", next.Format("Mon Jan 2 15:04"), next.Sub(now).Round(time.Minute))

			select {
			case <-ctx.Done():
				return
			case <-time.After(next.Sub(now)):
			}

			if err := w.RunOnce(ctx); err != nil {
				log.Printf("Inbox scan error: %v", err)
			}
		}
	}()
}

// RunOnce scans the inbox and, when CSV files are present, processes
// and delivers them as one batch.
func (w *Watcher) RunOnce(ctx context.Context) error {
	paths, err := w.scan()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	log.Printf("Inbox scan found %d files", len(paths))

	started := time.Now()
	out, err := w.Pipeline.ProcessFiles(ctx, paths)
	w.Pipeline.JournalRun(out, "watch", started, err)
	if err != nil {
		// Leave the files in place so a partial drop can complete and
		// be retried on the next tick.
		return err
	}

	if w.Pipeline.Sender != nil {
		tally, err := w.Pipeline.Deliver(ctx, out)
		if err != nil {
			return err
		}
		log.Printf("Inbox batch delivered: %d sent, %d failed", tally.Sent, tally.Failed)
	}

	return w.archive(paths)
}

func (w *Watcher) scan() ([]string, error) {
	entries, err := os.ReadDir(w.InboxDir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			paths = append(paths, filepath.Join(w.InboxDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *Watcher) archive(paths []string) error {
	processed := filepath.Join(w.InboxDir, "processed")
	if err := os.MkdirAll(processed, 0o755); err != nil {
		return err
	}
	stamp := time.Now().Format("20060102-150405")
	for _, path := range paths {
		dest := filepath.Join(processed, stamp+"-"+filepath.Base(path))
		if err := os.Rename(path, dest); err != nil {
			log.Printf("Inbox archive %s: %v", path, err)
		}
	}
	return nil
}
