// Package tween provides time-based interpolation with explicit,
// cancelable completion handles. Every visual command in the direction
// engine settles by waiting on one or more of these handles.
package tween

import (
	"sync"
	"time"

	"github.com/cinedir/engine/internal/scene"
)

// Handle is the completion signal for one running interpolation.
// Done closes exactly once, whether the tween ran out or was canceled.
type Handle struct {
	done       chan struct{}
	cancel     chan struct{}
	doneOnce   sync.Once
	cancelOnce sync.Once
}

func newHandle() *Handle {
	return &Handle{
		done:   make(chan struct{}),
		cancel: make(chan struct{}),
	}
}

// Done is closed when the tween finishes or is canceled.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Cancel stops the tween where it is. The value freezes at the last
// applied frame; Done still closes so joins never hang.
func (h *Handle) Cancel() {
	h.cancelOnce.Do(func() { close(h.cancel) })
}

func (h *Handle) finish() {
	h.doneOnce.Do(func() { close(h.done) })
}

// Runner drives tweens off wall-clock tickers at a fixed step. It also
// tracks every live handle so the engine's cancel-on-stop option can
// sweep in-flight work.
type Runner struct {
	step time.Duration

	mu     sync.Mutex
	active map[*Handle]struct{}
}

// DefaultStep is the frame interval tweens advance at (~60fps).
const DefaultStep = 16 * time.Millisecond

// NewRunner creates a runner. step <= 0 selects DefaultStep.
func NewRunner(step time.Duration) *Runner {
	if step <= 0 {
		step = DefaultStep
	}
	return &Runner{
		step:   step,
		active: make(map[*Handle]struct{}),
	}
}

func (r *Runner) track(h *Handle) {
	r.mu.Lock()
	r.active[h] = struct{}{}
	r.mu.Unlock()
}

func (r *Runner) untrack(h *Handle) {
	r.mu.Lock()
	delete(r.active, h)
	r.mu.Unlock()
}

// ActiveCount reports how many tweens are currently live.
func (r *Runner) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// CancelAll cancels every live tween. Used by Engine.Stop when
// cancel-on-stop is enabled.
func (r *Runner) CancelAll() {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.active))
	for h := range r.active {
		handles = append(handles, h)
	}
	r.mu.Unlock()
	for _, h := range handles {
		h.Cancel()
	}
}

// Go interpolates from → to over duration, calling apply with each eased
// value. The final frame always applies exactly `to` unless canceled.
func (r *Runner) Go(from, to float64, duration time.Duration, ease Ease, apply func(float64)) *Handle {
	h := newHandle()
	if duration <= 0 {
		apply(to)
		h.finish()
		return h
	}
	if ease == nil {
		ease = Linear
	}
	r.track(h)
	go func() {
		defer r.untrack(h)
		defer h.finish()
		ticker := time.NewTicker(r.step)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-h.cancel:
				return
			case <-ticker.C:
				t := float64(time.Since(start)) / float64(duration)
				if t >= 1 {
					apply(to)
					return
				}
				apply(from + (to-from)*ease(t))
			}
		}
	}()
	return h
}

// GoVec3 interpolates a vector property componentwise with one handle.
func (r *Runner) GoVec3(from, to scene.Vec3, duration time.Duration, ease Ease, apply func(scene.Vec3)) *Handle {
	return r.Go(0, 1, duration, ease, func(t float64) {
		apply(from.Lerp(to, t))
	})
}

// After resolves once duration has elapsed; no side effects.
func (r *Runner) After(duration time.Duration) *Handle {
	h := newHandle()
	if duration <= 0 {
		h.finish()
		return h
	}
	r.track(h)
	go func() {
		defer r.untrack(h)
		defer h.finish()
		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-h.cancel:
		case <-timer.C:
		}
	}()
	return h
}

// Steps calls fn(i) for i in [0,n) at equal intervals spanning total.
// Camera shake and alarm beeps run on this.
func (r *Runner) Steps(n int, total time.Duration, fn func(i int)) *Handle {
	h := newHandle()
	if n <= 0 {
		h.finish()
		return h
	}
	interval := total / time.Duration(n)
	if interval <= 0 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		h.finish()
		return h
	}
	r.track(h)
	go func() {
		defer r.untrack(h)
		defer h.finish()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; i < n; i++ {
			select {
			case <-h.cancel:
				return
			case <-ticker.C:
				fn(i)
			}
		}
	}()
	return h
}

// Join blocks until every handle has settled. This is the aggregate join
// that keeps one task one atomic unit even when an executor fans out.
func Join(handles ...*Handle) {
	for _, h := range handles {
		if h != nil {
			<-h.Done()
		}
	}
}
