package director

import (
	"math"
	"math/rand"

	"github.com/cinedir/engine/internal/camera"
	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/tween"
	"go.uber.org/zap"
)

// shakeSteps is the number of discrete perturbations one shake applies.
const shakeSteps = 20

// execCamera drives the camera rig. A missing rig or controls resolves
// immediately — the sequence must survive running headless.
func execCamera(ec *Context, deps *Deps, cmd Command) Outcome {
	c := cmd.Camera
	if c == nil {
		return Skipped("camera command missing payload")
	}
	rig := ec.Camera
	if rig == nil || rig.Controls == nil {
		deps.Log.Debug("camera command with no rig bound",
			zap.String("action", c.Action))
		return Skipped("no camera rig bound")
	}
	dur := seconds(c.Duration)

	switch c.Action {
	case "dolly_in", "dolly_out":
		dist := 2.0
		if c.Scalar != nil {
			dist = *c.Scalar
		}
		if c.Action == "dolly_out" {
			dist = -dist
		}
		// Move along the current look direction; the orbit target stays
		// put, Update keeps the rig consistent per frame.
		to := rig.Position.Add(rig.LookDir().Scale(dist))
		<-deps.Tween.GoVec3(rig.Position, to, dur, tween.InOutCubic, func(v scene.Vec3) {
			rig.Position = v
			rig.Controls.Update()
		}).Done()

	case "focus":
		if ec.Scene == nil {
			return Skipped("focus with no scene bound")
		}
		node := ec.Scene.FindByName(c.Target)
		if node == nil {
			deps.Log.Debug("focus target not found", zap.String("target", c.Target))
			return Skipped("focus target not found: " + c.Target)
		}
		to := node.WorldPosition()
		<-deps.Tween.GoVec3(rig.Controls.Target, to, dur, tween.InOutCubic, func(v scene.Vec3) {
			rig.Controls.Target = v
			rig.Controls.Update()
		}).Done()

	case "pan":
		if c.Vector == nil {
			return Skipped("pan needs a vector delta")
		}
		to := rig.Controls.Target.Add(*c.Vector)
		<-deps.Tween.GoVec3(rig.Controls.Target, to, dur, tween.InOutCubic, func(v scene.Vec3) {
			rig.Controls.Target = v
			rig.Controls.Update()
		}).Done()

	case "orbit":
		sweep := math.Pi
		if c.Scalar != nil {
			sweep = *c.Scalar
		}
		// Constant-radius sweep: both X and Z are recomputed from the
		// elapsed angle every frame so the camera stays on the circle —
		// a plain position tween would cut the chord.
		radius := rig.OrbitRadius()
		start := rig.Azimuth()
		y := rig.Position.Y
		<-deps.Tween.Go(0, sweep, dur, tween.InOutCubic, func(angle float64) {
			a := start + angle
			rig.Position = scene.Vec3{
				X: radius * math.Cos(a),
				Y: y,
				Z: radius * math.Sin(a),
			}
			rig.Controls.Update()
		}).Done()

	case "shake":
		intensity := 0.5
		if c.Scalar != nil {
			intensity = *c.Scalar
		}
		pre := rig.Position
		<-deps.Tween.Steps(shakeSteps, dur, func(int) {
			rig.Position = pre.Add(scene.Vec3{
				X: (rand.Float64() - 0.5) * intensity,
				Y: (rand.Float64() - 0.5) * intensity,
				Z: (rand.Float64() - 0.5) * intensity,
			})
			rig.Controls.Update()
		}).Done()
		// Exact restore, whatever the last random offset was.
		rig.Position = pre
		rig.Controls.Update()

	case "reset":
		// Position and target home in parallel, joined before settling.
		posH := deps.Tween.GoVec3(rig.Position, camera.HomePosition, dur, tween.InOutCubic, func(v scene.Vec3) {
			rig.Position = v
			rig.Controls.Update()
		})
		tgtH := deps.Tween.GoVec3(rig.Controls.Target, camera.HomeTarget, dur, tween.InOutCubic, func(v scene.Vec3) {
			rig.Controls.Target = v
		})
		tween.Join(posH, tgtH)

	default:
		deps.Log.Debug("unknown camera action", zap.String("action", c.Action))
		return Skipped("unknown camera action: " + c.Action)
	}
	return Completed()
}
