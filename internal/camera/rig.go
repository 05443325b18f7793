// Package camera models the view rig the camera executor drives: a free
// camera position plus orbit controls that pivot around a target point.
package camera

import (
	"math"

	"github.com/cinedir/engine/internal/scene"
)

// Home pose the reset command returns to, whatever the rig did before.
var (
	HomePosition = scene.Vec3{X: 8, Y: 5, Z: 8}
	HomeTarget   = scene.Vec3{}
)

// OrbitControls carries the pivot point the camera looks at and orbits
// around — distinct from the camera's own position.
type OrbitControls struct {
	Target scene.Vec3

	updates int
}

// Update is the per-frame consistency hook. A render binding recomputes
// view matrices here; the headless rig just counts the call so tests can
// assert dolly kept the controls in step.
func (c *OrbitControls) Update() {
	c.updates++
}

// Updates reports how many times Update has run.
func (c *OrbitControls) Updates() int { return c.updates }

// Rig pairs the camera position with its orbit controls.
type Rig struct {
	Position scene.Vec3
	Controls *OrbitControls
}

// New returns a rig at the home pose.
func New() *Rig {
	return &Rig{
		Position: HomePosition,
		Controls: &OrbitControls{Target: HomeTarget},
	}
}

// LookDir is the unit vector from the camera toward the orbit target.
func (r *Rig) LookDir() scene.Vec3 {
	if r.Controls == nil {
		return scene.Vec3{}
	}
	return r.Controls.Target.Sub(r.Position).Normalize()
}

// OrbitRadius is the camera's distance from the origin in the XZ plane;
// the orbit sweep holds this constant.
func (r *Rig) OrbitRadius() float64 {
	return math.Hypot(r.Position.X, r.Position.Z)
}

// Azimuth is the camera's current angle around the Y axis.
func (r *Rig) Azimuth() float64 {
	return math.Atan2(r.Position.Z, r.Position.X)
}
