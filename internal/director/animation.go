package director

import (
	"errors"

	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/tween"
	"go.uber.org/zap"
)

// errNoScene is the animation executor's one hard failure: no scene root
// bound at all. Distinct from "scene present, target absent", which
// soft-skips like every other unresolved reference.
var errNoScene = errors.New("no scene root bound")

// execAnimation tweens one property of a named scene object.
func execAnimation(ec *Context, deps *Deps, cmd Command) Outcome {
	a := cmd.Animation
	if a == nil {
		return Skipped("animation command missing payload")
	}
	if ec.Scene == nil {
		return Failed(errNoScene)
	}
	node := ec.Scene.FindByName(a.Target)
	if node == nil {
		deps.Log.Debug("animation target not found", zap.String("target", a.Target))
		return Skipped("target not found: " + a.Target)
	}

	if a.Delay > 0 {
		<-deps.Tween.After(seconds(a.Delay)).Done()
	}
	ease := tween.ByName(a.Ease)
	dur := seconds(a.Duration)

	switch a.Action {
	case "rotate":
		if a.Vector == nil {
			return Skipped("rotate needs a vector value")
		}
		<-deps.Tween.GoVec3(node.Rotation, *a.Vector, dur, ease, func(v scene.Vec3) {
			node.Rotation = v
		}).Done()

	case "move":
		if a.Vector == nil {
			return Skipped("move needs a vector value")
		}
		<-deps.Tween.GoVec3(node.Position, *a.Vector, dur, ease, func(v scene.Vec3) {
			node.Position = v
		}).Done()

	case "scale":
		// Uniform scalar broadcasts to all three axes.
		var target scene.Vec3
		switch {
		case a.Vector != nil:
			target = *a.Vector
		case a.Scalar != nil:
			target = scene.Splat(*a.Scalar)
		default:
			return Skipped("scale needs a vector or scalar value")
		}
		<-deps.Tween.GoVec3(node.Scale, target, dur, ease, func(v scene.Vec3) {
			node.Scale = v
		}).Done()

	case "opacity":
		if !node.IsMesh || node.Material == nil {
			return Skipped("opacity requires a mesh with a material")
		}
		if a.Scalar == nil {
			return Skipped("opacity needs a scalar value")
		}
		node.Material.Transparent = true
		<-deps.Tween.Go(node.Material.Opacity, *a.Scalar, dur, ease, func(v float64) {
			node.Material.Opacity = v
		}).Done()

	case "color":
		if node.Material == nil || !node.Material.Lit {
			return Skipped("color requires a standard lit material")
		}
		target, err := scene.ParseColor(a.Color)
		if err != nil {
			deps.Log.Debug("animation color unparseable",
				zap.String("color", a.Color), zap.Error(err))
			return Skipped("unparseable color: " + a.Color)
		}
		from := node.Material.Color
		<-deps.Tween.Go(0, 1, dur, ease, func(t float64) {
			node.Material.Color = from.Lerp(target, t)
		}).Done()

	default:
		deps.Log.Debug("unknown animation action", zap.String("action", a.Action))
		return Skipped("unknown animation action: " + a.Action)
	}
	return Completed()
}
