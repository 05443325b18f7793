package director

import (
	"math"
	"testing"

	"github.com/cinedir/engine/internal/camera"
	"github.com/cinedir/engine/internal/scene"
)

func TestCameraResetAlwaysReachesHome(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	ctx.Camera.Position = scene.Vec3{X: -14, Y: 2, Z: 7}
	ctx.Camera.Controls.Target = scene.Vec3{X: 3, Y: 3, Z: 3}

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "reset", Duration: 0.05,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	if ctx.Camera.Position != camera.HomePosition {
		t.Fatalf("position %v, want %v", ctx.Camera.Position, camera.HomePosition)
	}
	if ctx.Camera.Controls.Target != camera.HomeTarget {
		t.Fatalf("target %v, want %v", ctx.Camera.Controls.Target, camera.HomeTarget)
	}
}

func TestCameraDollyMovesAlongLookDirection(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	start := ctx.Camera.Position
	look := ctx.Camera.LookDir()

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "dolly_in", Scalar: f(3), Duration: 0.04,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	want := start.Add(look.Scale(3))
	if got := ctx.Camera.Position; got.Distance(want) > 1e-9 {
		t.Fatalf("position %v, want %v", got, want)
	}
	if ctx.Camera.Controls.Target != camera.HomeTarget {
		t.Fatal("dolly must not move the orbit target")
	}
	if ctx.Camera.Controls.Updates() == 0 {
		t.Fatal("dolly never called controls.Update")
	}
}

func TestCameraFocusTracksTargetWorldPosition(t *testing.T) {
	deps := newTestDeps()
	root := newTestScene()
	ctx, _ := newTestContext(root)

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "focus", Target: "Lamp", Duration: 0.04,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	// Lamp sits under Group (0,3,0) at local (0,1,0) → world (0,4,0).
	if got := ctx.Camera.Controls.Target; got != (scene.Vec3{Y: 4}) {
		t.Fatalf("orbit target %v, want (0,4,0)", got)
	}
}

func TestCameraPanOffsetsTarget(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	ctx.Camera.Controls.Target = scene.Vec3{X: 1, Y: 1, Z: 1}

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "pan", Vector: v3(2, 0, -1), Duration: 0.04,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	if got := ctx.Camera.Controls.Target; got != (scene.Vec3{X: 3, Y: 1, Z: 0}) {
		t.Fatalf("orbit target %v", got)
	}
}

func TestCameraOrbitHoldsRadius(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	r0 := ctx.Camera.OrbitRadius()
	a0 := ctx.Camera.Azimuth()
	y0 := ctx.Camera.Position.Y

	sweep := math.Pi / 2
	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "orbit", Scalar: f(sweep), Duration: 0.06,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	if r := ctx.Camera.OrbitRadius(); math.Abs(r-r0) > 1e-9 {
		t.Fatalf("radius drifted %v → %v", r0, r)
	}
	if y := ctx.Camera.Position.Y; y != y0 {
		t.Fatalf("orbit changed height %v → %v", y0, y)
	}
	wantA := a0 + sweep
	gotA := ctx.Camera.Azimuth()
	if math.Abs(math.Mod(gotA-wantA+3*math.Pi, 2*math.Pi)-math.Pi) > 1e-6 {
		t.Fatalf("azimuth %v, want %v", gotA, wantA)
	}
}

func TestCameraShakeRestoresExactPosition(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	pre := ctx.Camera.Position

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "shake", Scalar: f(0.8), Duration: 0.06,
	}})
	if out.Code != OutcomeCompleted {
		t.Fatalf("outcome %v", out)
	}
	if ctx.Camera.Position != pre {
		t.Fatalf("shake left the camera at %v, want exact restore to %v",
			ctx.Camera.Position, pre)
	}
}

func TestCameraMissingRigSoftSkips(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())
	ctx.Camera = nil

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "reset", Duration: 0.01,
	}})
	if out.Code != OutcomeSkipped {
		t.Fatalf("outcome %v, want skip with no rig", out)
	}
}

func TestCameraUnknownActionSkips(t *testing.T) {
	deps := newTestDeps()
	ctx, _ := newTestContext(newTestScene())

	out := execCamera(ctx, deps, Command{Kind: KindCamera, Camera: &CameraCommand{
		Action: "barrel_roll", Duration: 0.01,
	}})
	if out.Code != OutcomeSkipped {
		t.Fatalf("outcome %v, want skip", out)
	}
}
