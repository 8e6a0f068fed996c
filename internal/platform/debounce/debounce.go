package debounce

import (
	"sync"
	"time"
)

// Executor runs a fired task. An ants pool satisfies it.
type Executor interface {
	Submit(task func()) error
}

type inlineExecutor struct{}

func (inlineExecutor) Submit(task func()) error {
	task()
	return nil
}

type pending struct {
	timer *time.Timer
	token uint64
	fn    func()
}

// Debouncer coalesces calls per key. Each Schedule restarts the quiet window
// for its key and replaces the task; only the last task runs.
type Debouncer struct {
	delay time.Duration
	exec  Executor

	mu      sync.Mutex
	pending map[string]*pending
	seq     uint64
	stopped bool
}

// New returns a debouncer. A nil executor runs tasks on the timer goroutine.
func New(delay time.Duration, exec Executor) *Debouncer {
	if exec == nil {
		exec = inlineExecutor{}
	}
	return &Debouncer{
		delay:   delay,
		exec:    exec,
		pending: make(map[string]*pending),
	}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule arms fn for key, superseding any task still waiting on that key.
// It reports false after Stop.
func (d *Debouncer) Schedule(key string, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	d.seq++
	token := d.seq
	p := &pending{token: token, fn: fn}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(key, token) })
	d.pending[key] = p
	return true
}

// Flush runs the waiting task for key now. It reports whether one was waiting.
func (d *Debouncer) Flush(key string) bool {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}
	d.run(p.fn)
	return true
}

// Cancel drops the waiting task for key without running it.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(d.pending, key)
	return true
}

func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Stop cancels every waiting task and rejects new ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

func (d *Debouncer) fire(key string, token uint64) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok || p.token != token {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.run(p.fn)
}

func (d *Debouncer) run(fn func()) {
	if err := d.exec.Submit(fn); err != nil {
		fn()
	}
}
