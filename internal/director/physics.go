package director

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/tween"
	"go.uber.org/zap"
)

// PhysicsWorld is pure bookkeeping: the set of object names flagged
// physics-enabled. No simulation hangs off it; the flag exists for the
// host's benefit and no other executor reads it.
type PhysicsWorld struct {
	mu      sync.Mutex
	enabled map[string]struct{}
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{enabled: make(map[string]struct{})}
}

func (w *PhysicsWorld) Enable(name string) {
	w.mu.Lock()
	w.enabled[name] = struct{}{}
	w.mu.Unlock()
}

func (w *PhysicsWorld) Disable(name string) {
	w.mu.Lock()
	delete(w.enabled, name)
	w.mu.Unlock()
}

// IsEnabled reports whether a name is currently flagged.
func (w *PhysicsWorld) IsEnabled(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.enabled[name]
	return ok
}

// Reset clears the whole set.
func (w *PhysicsWorld) Reset() {
	w.mu.Lock()
	w.enabled = make(map[string]struct{})
	w.mu.Unlock()
}

// Nudge scaling and tween windows for the force-style actions.
const (
	forceScale    = 0.1
	forceWindow   = 500 * time.Millisecond
	impulseScale  = 0.2
	impulseWindow = 200 * time.Millisecond

	explodeWindow = 500 * time.Millisecond
	gravitySettle = 600 * time.Millisecond
)

// execPhysics jolts scene objects with simulated forces.
func execPhysics(ec *Context, deps *Deps, cmd Command) Outcome {
	p := cmd.Physics
	if p == nil {
		return Skipped("physics command missing payload")
	}

	switch p.Action {
	case "enable":
		deps.Physics.Enable(p.Target)
		return Completed()
	case "disable":
		deps.Physics.Disable(p.Target)
		return Completed()
	}

	if ec.Scene == nil {
		deps.Log.Debug("physics command with no scene bound",
			zap.String("action", p.Action))
		return Skipped("no scene bound")
	}

	switch p.Action {
	case "apply_force", "apply_impulse":
		node := ec.Scene.FindByName(p.Target)
		if node == nil {
			deps.Log.Debug("physics target not found", zap.String("target", p.Target))
			return Skipped("target not found: " + p.Target)
		}
		if p.Vector == nil {
			return Skipped(p.Action + " needs a vector value")
		}
		scale, window := forceScale, forceWindow
		if p.Action == "apply_impulse" {
			scale, window = impulseScale, impulseWindow
		}
		to := node.Position.Add(p.Vector.Scale(scale))
		<-deps.Tween.GoVec3(node.Position, to, window, tween.OutQuad, func(v scene.Vec3) {
			node.Position = v
		}).Done()
		return Completed()

	case "explode":
		return execExplode(ec, deps, p)

	case "gravity":
		// Every airborne mesh drops to the ground with a bounce; the
		// command settles after a fixed window regardless of the
		// individual tweens.
		ec.Scene.EachMesh(func(n *scene.Node) {
			if n.Position.Y <= 0 {
				return
			}
			to := n.Position
			to.Y = 0
			deps.Tween.GoVec3(n.Position, to, gravitySettle, tween.OutBounce, func(v scene.Vec3) {
				n.Position = v
			})
		})
		<-deps.Tween.After(gravitySettle).Done()
		return Completed()

	default:
		deps.Log.Debug("unknown physics action", zap.String("action", p.Action))
		return Skipped("unknown physics action: " + p.Action)
	}
}

// execExplode pushes every mesh within the blast radius outward from the
// center, deeper penetration pushing harder, with a vertical lift and a
// random tumble. An empty radius degrades to a whole-scene shake.
func execExplode(ec *Context, deps *Deps, p *PhysicsCommand) Outcome {
	center := scene.Vec3{}
	if p.Target != "" {
		if node := ec.Scene.FindByName(p.Target); node != nil {
			center = node.WorldPosition()
		}
	}
	radius := p.Radius
	if radius <= 0 {
		radius = 3
	}

	var hit []*scene.Node
	ec.Scene.EachMesh(func(n *scene.Node) {
		d := n.WorldPosition().Distance(center)
		// distance 0 is the center object itself
		if d > 0 && d <= radius {
			hit = append(hit, n)
		}
	})

	if len(hit) == 0 {
		deps.Log.Debug("explode found no meshes in radius",
			zap.Float64("radius", radius))
		shakeScene(ec.Scene, deps, 0.3, 500*time.Millisecond)
		return Completed()
	}

	handles := make([]*tween.Handle, 0, len(hit)*2)
	for _, n := range hit {
		n := n
		pos := n.WorldPosition()
		d := pos.Distance(center)
		dir := pos.Sub(center).Normalize()
		// Falloff: (radius-d)/radius, doubled, plus vertical lift.
		push := dir.Scale((radius - d) / radius * 2)
		push.Y += 1
		to := n.Position.Add(push)
		handles = append(handles, deps.Tween.GoVec3(n.Position, to, explodeWindow, tween.OutCubic, func(v scene.Vec3) {
			n.Position = v
		}))
		// Independent random full-turn tumble on each axis.
		spin := n.Rotation.Add(scene.Vec3{
			X: rand.Float64() * 2 * math.Pi,
			Y: rand.Float64() * 2 * math.Pi,
			Z: rand.Float64() * 2 * math.Pi,
		})
		handles = append(handles, deps.Tween.GoVec3(n.Rotation, spin, explodeWindow, tween.OutCubic, func(v scene.Vec3) {
			n.Rotation = v
		}))
	}
	tween.Join(handles...)
	return Completed()
}

// shakeScene jitters the scene root and restores it — the explode
// fallback when nothing is in radius.
func shakeScene(root *scene.Node, deps *Deps, intensity float64, dur time.Duration) {
	pre := root.Position
	<-deps.Tween.Steps(shakeSteps, dur, func(int) {
		root.Position = pre.Add(scene.Vec3{
			X: (rand.Float64() - 0.5) * intensity,
			Y: (rand.Float64() - 0.5) * intensity,
			Z: (rand.Float64() - 0.5) * intensity,
		})
	}).Done()
	root.Position = pre
}
