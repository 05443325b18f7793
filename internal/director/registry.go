package director

import (
	"fmt"

	"go.uber.org/zap"
)

// ExecutorFunc performs one command's effect against the run context and
// reports how it settled. Executors block until their visual/audio
// effect has run its course; internal fan-out must be joined before
// returning.
type ExecutorFunc func(ec *Context, deps *Deps, cmd Command) Outcome

// Registry maps command kinds to executors. Unknown kinds soft-skip and
// a panicking executor is converted to a failure so one bad command
// never takes down the run loop.
type Registry struct {
	executors map[Kind]ExecutorFunc
	log       *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		executors: make(map[Kind]ExecutorFunc),
		log:       log,
	}
}

// Register maps a kind to its executor.
func (reg *Registry) Register(kind Kind, fn ExecutorFunc) {
	reg.executors[kind] = fn
}

// RegisterDefaults wires the six built-in executors.
func (reg *Registry) RegisterDefaults() {
	reg.Register(KindAnimation, execAnimation)
	reg.Register(KindCamera, execCamera)
	reg.Register(KindVFX, execVFX)
	reg.Register(KindSound, execSound)
	reg.Register(KindPhysics, execPhysics)
	reg.Register(KindWait, execWait)
}

// Dispatch routes a command to its executor.
func (reg *Registry) Dispatch(ec *Context, deps *Deps, cmd Command) Outcome {
	fn, ok := reg.executors[cmd.Kind]
	if !ok {
		reg.log.Debug("unknown command kind", zap.String("kind", string(cmd.Kind)))
		return Skipped(fmt.Sprintf("unknown command kind %q", cmd.Kind))
	}
	return reg.safeCall(fn, ec, deps, cmd)
}

// safeCall executes with panic recovery so a single bad command cannot
// crash the sequence.
func (reg *Registry) safeCall(fn ExecutorFunc, ec *Context, deps *Deps, cmd Command) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("executor panic recovered",
				zap.String("kind", string(cmd.Kind)),
				zap.Any("panic", rec),
			)
			out = Failed(fmt.Errorf("executor panic for kind %s: %v", cmd.Kind, rec))
		}
	}()
	return fn(ec, deps, cmd)
}
