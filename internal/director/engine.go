// Package director is the direction engine: a single-flight sequential
// scheduler that executes heterogeneous timed commands — animation,
// camera, VFX, sound, physics, wait — against a live scene and view
// state, with pause/resume/stop control and progress callbacks.
package director

import (
	"sync"

	"github.com/cinedir/engine/internal/audio"
	"github.com/cinedir/engine/internal/tween"
	"go.uber.org/zap"
)

// Deps bundles the long-lived collaborators the executors need. Unlike
// the per-run Context, these live for the engine's whole life.
type Deps struct {
	Tween   *tween.Runner
	Synth   *audio.Synth // nil = no audio backend bound; sound commands soft-skip
	Physics *PhysicsWorld
	Log     *zap.Logger
}

// Options tunes engine behavior.
type Options struct {
	// CancelOnStop makes Stop cancel in-flight tweens instead of letting
	// them run out as orphaned effects. Default false matches the
	// original soft-cancellation behavior.
	CancelOnStop bool
}

// State is the read-only progress snapshot.
type State struct {
	IsRunning    bool
	IsPaused     bool
	CurrentIndex int
	TotalTasks   int
}

// Engine owns the task queue and drives strictly sequential FIFO
// dispatch: task N+1 is never dispatched until task N's executor has
// settled. One engine value per application session — no singleton.
type Engine struct {
	deps *Deps
	reg  *Registry
	log  *zap.Logger
	opts Options

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*Task
	cursor  int
	running bool
	paused  bool
	abort   bool
	gen     uint64 // run generation; an old loop finishing its in-flight task must not touch a newer run
	ctx     *Context
}

// New builds an engine with the six default executors registered.
// Missing deps get working defaults; a nil Synth simply disables sound.
func New(deps *Deps, opts Options) *Engine {
	if deps == nil {
		deps = &Deps{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Tween == nil {
		deps.Tween = tween.NewRunner(0)
	}
	if deps.Physics == nil {
		deps.Physics = NewPhysicsWorld()
	}
	reg := NewRegistry(deps.Log)
	reg.RegisterDefaults()
	e := &Engine{
		deps: deps,
		reg:  reg,
		log:  deps.Log,
		opts: opts,
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// SetContext replaces the active execution context. No validation;
// effective for subsequent executor calls.
func (e *Engine) SetContext(ctx *Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
}

// AddTasks appends to the queue tail without touching the cursor.
// Appending while a run is in flight is unsupported.
func (e *Engine) AddTasks(tasks []*Task) {
	e.mu.Lock()
	e.queue = append(e.queue, tasks...)
	e.mu.Unlock()
}

// AddCommands wraps commands into tasks and appends them.
func (e *Engine) AddCommands(cmds []Command) []*Task {
	tasks := WrapTasks(cmds)
	e.AddTasks(tasks)
	return tasks
}

// ClearTasks empties the queue and resets the cursor. Running state is
// untouched.
func (e *Engine) ClearTasks() {
	e.mu.Lock()
	e.queue = nil
	e.cursor = 0
	e.mu.Unlock()
}

// Execute runs the queue start to finish, blocking the caller until the
// queue is exhausted or stopped. Errors never escape: a missing context
// or a concurrent run is logged and the call returns having done no
// work; executor failures land in task status only.
func (e *Engine) Execute() {
	e.mu.Lock()
	if e.ctx == nil {
		e.mu.Unlock()
		e.log.Error("execute called with no context bound")
		return
	}
	if e.running {
		e.mu.Unlock()
		e.log.Warn("execute called while already running")
		return
	}
	e.running = true
	e.paused = false
	e.abort = false
	e.gen++
	g := e.gen
	ctx := e.ctx
	e.mu.Unlock()

	exhausted := false
	defer func() {
		e.mu.Lock()
		if e.gen == g {
			e.running = false
			e.paused = false
			e.cursor = 0
		}
		e.mu.Unlock()
		if exhausted && ctx.OnAllComplete != nil {
			ctx.OnAllComplete()
		}
	}()

	for {
		e.mu.Lock()
		// Pause parks here — between tasks, never mid-task. Resume and
		// Stop broadcast the condition.
		for e.paused && !e.abort && e.gen == g {
			e.cond.Wait()
		}
		if e.abort || e.gen != g {
			at := e.cursor
			e.mu.Unlock()
			e.log.Debug("run aborted", zap.Int("at_index", at))
			return
		}
		if e.cursor >= len(e.queue) {
			e.mu.Unlock()
			exhausted = true
			return
		}
		task := e.queue[e.cursor]
		index := e.cursor
		e.mu.Unlock()

		task.setStatus(StatusRunning)
		if ctx.OnTaskStart != nil {
			ctx.OnTaskStart(task)
		}
		e.log.Debug("task start",
			zap.Int("index", index),
			zap.String("id", task.ID),
			zap.String("kind", string(task.Command.Kind)),
		)

		outcome := e.reg.Dispatch(ctx, e.deps, task.Command)
		switch outcome.Code {
		case OutcomeFailed:
			task.setStatus(StatusFailed)
			e.log.Warn("task failed",
				zap.Int("index", index),
				zap.String("kind", string(task.Command.Kind)),
				zap.Error(outcome.Err),
			)
		default:
			// Skips count as trivially successful.
			if outcome.Code == OutcomeSkipped {
				e.log.Debug("task skipped",
					zap.Int("index", index),
					zap.String("kind", string(task.Command.Kind)),
					zap.String("reason", outcome.Reason),
				)
			}
			task.setStatus(StatusCompleted)
		}
		if ctx.OnTaskComplete != nil {
			ctx.OnTaskComplete(task)
		}

		e.mu.Lock()
		if e.gen == g {
			e.cursor++
		}
		e.mu.Unlock()
	}
}

// Pause withholds the next dispatch. The task currently in flight is
// unaffected and runs to completion.
func (e *Engine) Pause() {
	e.mu.Lock()
	if e.running {
		e.paused = true
	}
	e.mu.Unlock()
}

// Resume lifts a pause.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
	e.cond.Broadcast()
}

// Stop aborts the run: no further task is dispatched and the cursor
// resets. Without CancelOnStop, an in-flight executor's tweens run to
// natural completion as orphaned side effects.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.abort = true
	e.running = false
	e.paused = false
	e.cursor = 0
	e.mu.Unlock()
	e.cond.Broadcast()
	if e.opts.CancelOnStop {
		e.deps.Tween.CancelAll()
	}
}

// GetState returns a progress snapshot.
func (e *Engine) GetState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		IsRunning:    e.running,
		IsPaused:     e.paused,
		CurrentIndex: e.cursor,
		TotalTasks:   len(e.queue),
	}
}
