package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/cinedir/engine/internal/director"
	"github.com/cinedir/engine/internal/scene"
)

const demoStory = `
function opening()
	return {
		{ type = "camera", action = "focus", target = "Hero", duration = 1.5 },
		{ type = "animation", target = "Hero", action = "move",
		  vector = { x = 2, y = 0, z = -1 }, duration = 1, ease = "ease_out" },
		{ type = "sound", sound = "whoosh", volume = -10 },
		{ type = "wait", duration = 0.5 },
	}
end

function bad_story()
	return "not a list"
end

function future_story()
	return {
		{ type = "hologram", duration = 1 },
	}
end
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "demo.lua"), []byte(demoStory), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestRunStoryConvertsCommands(t *testing.T) {
	e := newTestEngine(t)

	cmds, err := e.RunStory("opening")
	if err != nil {
		t.Fatalf("run story: %v", err)
	}
	if len(cmds) != 4 {
		t.Fatalf("got %d commands, want 4", len(cmds))
	}

	cam := cmds[0].Camera
	if cmds[0].Kind != director.KindCamera || cam == nil {
		t.Fatalf("command 0 = %+v", cmds[0])
	}
	if cam.Action != "focus" || cam.Target != "Hero" || cam.Duration != 1.5 {
		t.Fatalf("camera payload %+v", cam)
	}

	anim := cmds[1].Animation
	if anim == nil || anim.Vector == nil {
		t.Fatalf("animation payload %+v", cmds[1])
	}
	if *anim.Vector != (scene.Vec3{X: 2, Y: 0, Z: -1}) {
		t.Fatalf("vector %v", *anim.Vector)
	}
	if anim.Ease != "ease_out" {
		t.Fatalf("ease %q", anim.Ease)
	}

	snd := cmds[2].Sound
	if snd == nil || snd.VolumeDB == nil || *snd.VolumeDB != -10 {
		t.Fatalf("sound payload %+v", snd)
	}

	if cmds[3].Wait == nil || cmds[3].Wait.Duration != 0.5 {
		t.Fatalf("wait payload %+v", cmds[3].Wait)
	}
}

func TestRunStoryMissingFunction(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.RunStory("finale"); err == nil {
		t.Fatal("missing story ran")
	}
}

func TestRunStoryNonListResult(t *testing.T) {
	e := newTestEngine(t)
	if _, err := e.RunStory("bad_story"); err == nil {
		t.Fatal("non-list story result accepted")
	}
}

func TestRunStoryUnknownTypePassesThrough(t *testing.T) {
	e := newTestEngine(t)
	cmds, err := e.RunStory("future_story")
	if err != nil {
		t.Fatalf("run story: %v", err)
	}
	if len(cmds) != 1 || cmds[0].Kind != director.Kind("hologram") {
		t.Fatalf("unknown type mangled: %+v", cmds)
	}
}

func TestHasStory(t *testing.T) {
	e := newTestEngine(t)
	if !e.HasStory("opening") {
		t.Fatal("opening not found")
	}
	if e.HasStory("finale") {
		t.Fatal("phantom story found")
	}
}

func TestMissingStoryDirIsNotAnError(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	if err != nil {
		t.Fatalf("missing dir: %v", err)
	}
	e.Close()
}
