package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Worker fires the daily trigger at a fixed local hour. Invocations are
// serial; the next one is not scheduled until the previous returns.
type Worker struct {
	job      *Job
	sendHour int

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex

	lastResult *Result
	resultMu   sync.RWMutex
}

// NewWorker creates a worker that triggers the job daily at sendHour
// (0-23, local time).
func NewWorker(job *Job, sendHour int) *Worker {
	if sendHour < 0 || sendHour > 23 {
		sendHour = 6
	}
	return &Worker{job: job, sendHour: sendHour}
}

// Start begins the daily trigger loop.
func (w *Worker) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("scheduler worker already running")
	}
	w.running = true
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.mu.Unlock()

	log.Printf("[Scheduler] Starting daily trigger at %02d:00 local time", w.sendHour)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
	log.Printf("[Scheduler] Stopped")
}

// LastResult returns the most recent trigger result, nil before the first
// run.
func (w *Worker) LastResult() *Result {
	w.resultMu.RLock()
	defer w.resultMu.RUnlock()
	return w.lastResult
}

func (w *Worker) loop() {
	defer w.wg.Done()

	for {
		next := nextTrigger(time.Now(), w.sendHour)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-w.ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			res := w.job.Run(w.ctx, now)
			w.resultMu.Lock()
			w.lastResult = &res
			w.resultMu.Unlock()
		}
	}
}

// nextTrigger returns the next occurrence of sendHour strictly after now.
func nextTrigger(now time.Time, sendHour int) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, sendHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
