package director

import (
	"github.com/cinedir/engine/internal/camera"
	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/vfx"
)

// Context bundles the host references one run executes against. The
// engine holds it only for the duration of a run and tolerates it being
// swapped between runs; nothing in it is copied or owned.
type Context struct {
	// Scene is the live scene graph root. Animation and physics mutate
	// it; camera focus reads it.
	Scene *scene.Node

	// Camera is the camera + orbit-controls rig.
	Camera *camera.Rig

	// GetVFX returns the host's current post-effect state; SetVFX
	// replaces it wholesale. The VFX executor reads at envelope start
	// and writes every ramp frame.
	GetVFX func() vfx.State
	SetVFX func(vfx.State)

	// Lifecycle callbacks, all optional.
	OnTaskStart    func(*Task)
	OnTaskComplete func(*Task)
	OnAllComplete  func()
}

// vfxState reads the current state, tolerating a nil getter.
func (c *Context) vfxState() vfx.State {
	if c.GetVFX == nil {
		return vfx.State{}
	}
	return c.GetVFX()
}

// setVFX writes the state, tolerating a nil setter.
func (c *Context) setVFX(s vfx.State) {
	if c.SetVFX != nil {
		c.SetVFX(s)
	}
}
