package journal

import (
	"sync"
	"time"
)

// Task is a running periodic job. Stop is idempotent and never blocks on the job.
type Task interface {
	Stop()
}

// Scheduler starts periodic jobs
type Scheduler interface {
	Start(interval time.Duration, fn func()) Task
}

// TickerScheduler runs each job on its own goroutine driven by a time.Ticker
type TickerScheduler struct{}

func (TickerScheduler) Start(interval time.Duration, fn func()) Task {
	t := &tickerTask{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type tickerTask struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerTask) run(fn func()) {
	for {
		select {
		case <-t.ticker.C:
			fn()
		case <-t.done:
			return
		}
	}
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
