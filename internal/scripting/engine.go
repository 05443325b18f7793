package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cinedir/engine/internal/director"
	"github.com/cinedir/engine/internal/scene"
)

// Engine wraps a single gopher-lua VM that produces direction command
// lists. Stories are plain Lua functions: each returns an array of
// command tables and the host feeds the converted list to the director.
// Single-goroutine access only. Hot-reload planned via atomic swap.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in storyDir.
func NewEngine(storyDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(storyDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load stories: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua story", zap.String("file", path))
	}
	return nil
}

// HasStory reports whether a global story function with that name exists.
func (e *Engine) HasStory(name string) bool {
	fn := e.vm.GetGlobal(name)
	_, ok := fn.(*lua.LFunction)
	return ok
}

// RunStory calls the named Lua story function and converts its returned
// array of command tables into director commands. Commands with an
// unknown type are carried through untouched; the dispatch layer skips
// them.
func (e *Engine) RunStory(name string) ([]director.Command, error) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil, fmt.Errorf("story %q not found", name)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}); err != nil {
		return nil, fmt.Errorf("story %q: %w", name, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("story %q returned %s, want a command list", name, result.Type())
	}

	var cmds []director.Command
	var convErr error
	rt.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		row, ok := v.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("story %q: command %d is %s, want a table", name, len(cmds), v.Type())
			return
		}
		cmd, err := toCommand(row)
		if err != nil {
			convErr = fmt.Errorf("story %q: command %d: %w", name, len(cmds), err)
			return
		}
		cmds = append(cmds, cmd)
	})
	if convErr != nil {
		return nil, convErr
	}
	return cmds, nil
}

// toCommand builds one director command from a flat Lua command table.
func toCommand(row *lua.LTable) (director.Command, error) {
	kind := director.Kind(lStr(row, "type"))
	cmd := director.Command{Kind: kind}

	switch kind {
	case director.KindAnimation:
		cmd.Animation = &director.AnimationCommand{
			Target:   lStr(row, "target"),
			Action:   lStr(row, "action"),
			Vector:   lVec(row, "vector"),
			Scalar:   lFloatPtr(row, "scalar"),
			Color:    lStr(row, "color"),
			Duration: lFloat(row, "duration"),
			Ease:     lStr(row, "ease"),
			Delay:    lFloat(row, "delay"),
		}
	case director.KindCamera:
		cmd.Camera = &director.CameraCommand{
			Action:   lStr(row, "action"),
			Target:   lStr(row, "target"),
			Vector:   lVec(row, "vector"),
			Scalar:   lFloatPtr(row, "scalar"),
			Duration: lFloat(row, "duration"),
		}
	case director.KindVFX:
		cmd.VFX = &director.VFXCommand{
			Effect:    lStr(row, "effect"),
			Intensity: lFloat(row, "intensity"),
			Duration:  lFloat(row, "duration"),
			Color:     lStr(row, "color"),
		}
	case director.KindSound:
		cmd.Sound = &director.SoundCommand{
			Sound:    lStr(row, "sound"),
			VolumeDB: lFloatPtr(row, "volume"),
			Duration: lFloat(row, "duration"),
		}
	case director.KindPhysics:
		cmd.Physics = &director.PhysicsCommand{
			Action: lStr(row, "action"),
			Target: lStr(row, "target"),
			Vector: lVec(row, "vector"),
			Scalar: lFloatPtr(row, "scalar"),
			Radius: lFloat(row, "radius"),
		}
	case director.KindWait:
		cmd.Wait = &director.WaitCommand{
			Duration: lFloat(row, "duration"),
		}
	default:
		if kind == "" {
			return cmd, fmt.Errorf("command table missing type")
		}
		// unknown type: pass through for the dispatcher to soft-skip
	}
	return cmd, nil
}

// --- Lua helpers ---

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

// lFloat reads a number field, zero when absent.
func lFloat(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// lFloatPtr reads an optional number field, nil when absent.
func lFloatPtr(t *lua.LTable, key string) *float64 {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	f := float64(lua.LVAsNumber(v))
	return &f
}

// lVec reads an optional {x=,y=,z=} table field, nil when absent.
func lVec(t *lua.LTable, key string) *scene.Vec3 {
	v, ok := t.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	return &scene.Vec3{
		X: lFloat(v, "x"),
		Y: lFloat(v, "y"),
		Z: lFloat(v, "z"),
	}
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
