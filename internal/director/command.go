package director

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cinedir/engine/internal/scene"
)

// Kind discriminates the command union on the wire.
type Kind string

const (
	KindAnimation Kind = "animation"
	KindCamera    Kind = "camera"
	KindVFX       Kind = "vfx"
	KindSound     Kind = "sound"
	KindPhysics   Kind = "physics"
	KindWait      Kind = "wait"
)

// Command is the closed union producers emit: one Kind plus exactly one
// populated payload. Commands are immutable once created.
type Command struct {
	Kind      Kind              `json:"type"`
	Animation *AnimationCommand `json:"animation,omitempty"`
	Camera    *CameraCommand    `json:"camera,omitempty"`
	VFX       *VFXCommand       `json:"vfx,omitempty"`
	Sound     *SoundCommand     `json:"sound,omitempty"`
	Physics   *PhysicsCommand   `json:"physics,omitempty"`
	Wait      *WaitCommand      `json:"wait,omitempty"`
}

// AnimationCommand tweens one property of a named scene object. Exactly
// one of Vector/Scalar/Color carries the target value, depending on the
// action.
type AnimationCommand struct {
	Target   string      `json:"target"`
	Action   string      `json:"action"` // rotate|move|scale|color|opacity
	Vector   *scene.Vec3 `json:"vector,omitempty"`
	Scalar   *float64    `json:"scalar,omitempty"`
	Color    string      `json:"color,omitempty"`
	Duration float64     `json:"duration"`
	Ease     string      `json:"ease,omitempty"`
	Delay    float64     `json:"delay,omitempty"`
}

// CameraCommand drives the camera rig.
type CameraCommand struct {
	Action   string      `json:"action"` // dolly_in|dolly_out|pan|orbit|focus|shake|reset
	Target   string      `json:"target,omitempty"`
	Vector   *scene.Vec3 `json:"vector,omitempty"`
	Scalar   *float64    `json:"scalar,omitempty"`
	Duration float64     `json:"duration"`
}

// VFXCommand runs one post-effect channel through its envelope.
type VFXCommand struct {
	Effect    string  `json:"effect"` // bloom|chromatic_aberration|vignette|noise|glitch|blur|color_shift
	Intensity float64 `json:"intensity,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// SoundCommand triggers a synth recipe. VolumeDB is nominal -60..0;
// nil selects the recipe default.
type SoundCommand struct {
	Sound    string   `json:"sound"` // explosion|impact|whoosh|laser|charge|powerup|alarm
	VolumeDB *float64 `json:"volume,omitempty"`
	Duration float64  `json:"duration,omitempty"`
}

// PhysicsCommand jolts scene objects with simulated forces.
type PhysicsCommand struct {
	Action string      `json:"action"` // enable|disable|apply_force|apply_impulse|explode|gravity
	Target string      `json:"target,omitempty"`
	Vector *scene.Vec3 `json:"vector,omitempty"`
	Scalar *float64    `json:"scalar,omitempty"`
	Radius float64     `json:"radius,omitempty"`
}

// WaitCommand idles for Duration seconds, no side effects.
type WaitCommand struct {
	Duration float64 `json:"duration"`
}

// ParseCommands decodes a JSON command list — the wire contract with the
// AI-direction and story producers. A known Kind must carry its payload;
// unknown Kinds are passed through for the dispatch layer to soft-skip.
func ParseCommands(data []byte) ([]Command, error) {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("parse commands: %w", err)
	}
	for i, c := range cmds {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
	}
	return cmds, nil
}

func (c Command) validate() error {
	switch c.Kind {
	case KindAnimation:
		if c.Animation == nil {
			return fmt.Errorf("animation command missing payload")
		}
	case KindCamera:
		if c.Camera == nil {
			return fmt.Errorf("camera command missing payload")
		}
	case KindVFX:
		if c.VFX == nil {
			return fmt.Errorf("vfx command missing payload")
		}
	case KindSound:
		if c.Sound == nil {
			return fmt.Errorf("sound command missing payload")
		}
	case KindPhysics:
		if c.Physics == nil {
			return fmt.Errorf("physics command missing payload")
		}
	case KindWait:
		if c.Wait == nil {
			return fmt.Errorf("wait command missing payload")
		}
	}
	return nil
}

// seconds converts a wire duration (float seconds) to time.Duration.
func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
