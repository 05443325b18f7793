package director

import (
	"sync"
	"testing"
	"time"

	"github.com/cinedir/engine/internal/camera"
	"github.com/cinedir/engine/internal/scene"
	"github.com/cinedir/engine/internal/tween"
	"github.com/cinedir/engine/internal/vfx"
	"go.uber.org/zap"
)

// vfxHolder stands in for the host's post-effect state, recording the
// envelope shape the executor drove.
type vfxHolder struct {
	mu          sync.Mutex
	st          vfx.State
	maxBloom    float64
	everEnabled bool
}

func (h *vfxHolder) get() vfx.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.st
}

func (h *vfxHolder) set(s vfx.State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.st = s
	if s.Bloom.Magnitude > h.maxBloom {
		h.maxBloom = s.Bloom.Magnitude
	}
	if s.Bloom.Enabled || s.Glitch.Enabled || s.Vignette.Enabled ||
		s.Noise.Enabled || s.ChromaticAberration.Enabled {
		h.everEnabled = true
	}
}

func newTestDeps() *Deps {
	return &Deps{
		Tween:   tween.NewRunner(2 * time.Millisecond),
		Physics: NewPhysicsWorld(),
		Log:     zap.NewNop(),
	}
}

// newTestScene builds:
//
//	Scene
//	├── Hero      (mesh at 1,0,2)
//	├── Crate     (mesh at 2,0,0)
//	└── Group (at 0,3,0)
//	    └── Lamp  (mesh at 0,1,0, unlit)
func newTestScene() *scene.Node {
	root := scene.NewNode("Scene")
	hero := root.AddChild(scene.NewMesh("Hero"))
	hero.Position = scene.Vec3{X: 1, Y: 0, Z: 2}
	crate := root.AddChild(scene.NewMesh("Crate"))
	crate.Position = scene.Vec3{X: 2, Y: 0, Z: 0}
	group := root.AddChild(scene.NewNode("Group"))
	group.Position = scene.Vec3{Y: 3}
	lamp := group.AddChild(scene.NewMesh("Lamp"))
	lamp.Position = scene.Vec3{Y: 1}
	lamp.Material.Lit = false
	return root
}

func newTestContext(root *scene.Node) (*Context, *vfxHolder) {
	h := &vfxHolder{}
	return &Context{
		Scene:  root,
		Camera: camera.New(),
		GetVFX: h.get,
		SetVFX: h.set,
	}, h
}

// waitFor polls cond until it holds or the test times out.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never held")
}

func f(v float64) *float64 { return &v }

func v3(x, y, z float64) *scene.Vec3 { return &scene.Vec3{X: x, Y: y, Z: z} }

func waitCmd(d float64) Command {
	return Command{Kind: KindWait, Wait: &WaitCommand{Duration: d}}
}
