package scrutiny

import (
	"strings"
	"sync"
	"time"
)

// DefaultQuiet is the debounce quiet period for live feedback callers
const DefaultQuiet = 300 * time.Millisecond

// Debouncer re-runs the pipeline after an input has been stable for the
// quiet period. Each Submit cancels any pending evaluation, so only the
// last scheduled input is ever scored; Stop guarantees the callback never
// fires afterwards, waiting out an in-flight emit if one is running. Blank
// input resets to the clean result immediately, with no debounce.
//
// emit runs under the Debouncer's lock and must not call Submit or Stop
type Debouncer struct {
	engine *Engine
	quiet  time.Duration
	emit   func(Result)

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
}

// NewDebouncer wires engine evaluations into emit with the given quiet
// period; quiet <= 0 falls back to DefaultQuiet
func NewDebouncer(engine *Engine, quiet time.Duration, emit func(Result)) *Debouncer {
	if engine == nil {
		panic("scrutiny.Debouncer requires a non nil engine")
	}
	if emit == nil {
		panic("scrutiny.Debouncer requires a non nil emit func")
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{engine: engine, quiet: quiet, emit: emit}
}

// Submit replaces any pending evaluation with one for text
func (d *Debouncer) Submit(text string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	if strings.TrimSpace(text) == "" {
		d.emit(Result{Violations: []string{}, OffendingWords: []string{}})
		d.mu.Unlock()
		return
	}
	d.pending = time.AfterFunc(d.quiet, func() {
		res := d.engine.Analyze(text)
		d.mu.Lock()
		defer d.mu.Unlock()
		// holding the lock here means Stop cannot return while an emit is
		// in flight, and a completed Stop is always observed
		if !d.stopped {
			d.emit(res)
		}
	})
	d.mu.Unlock()
}

// Stop cancels any pending evaluation and suppresses late callbacks.
// Safe to call more than once
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.mu.Unlock()
}
