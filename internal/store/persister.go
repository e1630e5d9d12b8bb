package store

import (
	"context"
	"sync"
	"time"

	"studysheet/internal/logger"
)

// Persister writes the latest snapshot for one key on a background goroutine.
// Notify never blocks on I/O; only the most recent snapshot is written. Failures are logged and
// dropped.
type Persister struct {
	slot     Slot
	key      string
	debounce time.Duration
	timeout  time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	timer   *time.Timer
	latest  []byte
	pending bool
	running bool
}

type PersisterOpts struct {
	Slot Slot
	Key  string
	// Debounce delays writes so bursts of mutations produce one write. Zero writes asap.
	Debounce time.Duration
	// Timeout bounds one write. Zero means 5s.
	Timeout time.Duration
	Log     *logger.Logger
}

func NewPersister(opts PersisterOpts) *Persister {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &Persister{
		slot:     opts.Slot,
		key:      opts.Key,
		debounce: opts.Debounce,
		timeout:  timeout,
		log:      opts.Log,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *Persister) Notify(snapshot []byte) {
	if p == nil || p.slot == nil {
		return
	}

	p.mu.Lock()
	p.latest = snapshot
	p.pending = true
	if p.timer == nil {
		p.timer = time.AfterFunc(p.debounce, p.onTimer)
		p.mu.Unlock()
		return
	}
	p.timer.Reset(p.debounce)
	p.mu.Unlock()
}

func (p *Persister) onTimer() {
	p.mu.Lock()
	if p.running {
		// The in-flight write reschedules on completion.
		p.mu.Unlock()
		return
	}
	if !p.pending {
		p.mu.Unlock()
		return
	}
	b := p.take()
	p.mu.Unlock()

	p.write(b)

	p.mu.Lock()
	p.finish()
	p.mu.Unlock()
}

// Flush blocks until the latest snapshot has been written (or dropped on error).
func (p *Persister) Flush() {
	if p == nil || p.slot == nil {
		return
	}
	p.mu.Lock()
	for p.running {
		p.cond.Wait()
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	if !p.pending {
		p.mu.Unlock()
		return
	}
	b := p.take()
	p.mu.Unlock()

	p.write(b)

	p.mu.Lock()
	p.finish()
	p.mu.Unlock()
}

// take must be called with mu held.
func (p *Persister) take() []byte {
	b := p.latest
	p.latest = nil
	p.pending = false
	p.running = true
	return b
}

// finish must be called with mu held.
func (p *Persister) finish() {
	p.running = false
	// A Notify that landed during the write was skipped by onTimer.
	if p.pending && p.timer != nil {
		p.timer.Reset(p.debounce)
	}
	p.cond.Broadcast()
}

func (p *Persister) write(b []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.slot.Put(ctx, p.key, b); err != nil {
		p.log.Warn("persist failed", "key", p.key, "error", err)
		return
	}
	p.log.Debug("persisted", "key", p.key, "bytes", len(b))
}
