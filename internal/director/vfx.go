package director

import (
	"github.com/cinedir/engine/internal/tween"
	"github.com/cinedir/engine/internal/vfx"
	"go.uber.org/zap"
)

// Effect channel names on the wire.
const (
	effectBloom      = "bloom"
	effectChromatic  = "chromatic_aberration"
	effectVignette   = "vignette"
	effectNoise      = "noise"
	effectGlitch     = "glitch"
	effectBlur       = "blur"        // alias → vignette
	effectColorShift = "color_shift" // alias → chromatic_aberration
)

// Per-channel unit scale: intensity 1.0 on the wire maps to this
// magnitude. Chromatic aberration works on a sub-unit offset scale.
var effectScale = map[string]float64{
	effectBloom:     1,
	effectChromatic: 0.005,
	effectVignette:  0.4,
	effectNoise:     1,
	effectGlitch:    1,
}

// decayEpsilon is the magnitude below which a channel counts as off.
func decayEpsilon(effect string) float64 {
	if effect == effectChromatic {
		return 0.0001
	}
	return 0.01
}

func channelOf(s vfx.State, effect string) vfx.Channel {
	switch effect {
	case effectBloom:
		return s.Bloom
	case effectChromatic:
		return s.ChromaticAberration
	case effectVignette:
		return s.Vignette
	case effectNoise:
		return s.Noise
	case effectGlitch:
		return s.Glitch
	}
	return vfx.Channel{}
}

func withChannel(s vfx.State, effect string, ch vfx.Channel) vfx.State {
	switch effect {
	case effectBloom:
		s.Bloom = ch
	case effectChromatic:
		s.ChromaticAberration = ch
	case effectVignette:
		s.Vignette = ch
	case effectNoise:
		s.Noise = ch
	case effectGlitch:
		s.Glitch = ch
	}
	return s
}

// execVFX runs one channel through an attack→hold→release envelope and
// settles when the release completes. The state is always replaced
// wholesale through the context setter.
func execVFX(ec *Context, deps *Deps, cmd Command) Outcome {
	v := cmd.VFX
	if v == nil {
		return Skipped("vfx command missing payload")
	}
	effect := v.Effect
	// Aliases re-dispatch onto their underlying channel.
	switch effect {
	case effectBlur:
		effect = effectVignette
	case effectColorShift:
		effect = effectChromatic
	}
	scale, ok := effectScale[effect]
	if !ok {
		deps.Log.Debug("unknown vfx effect", zap.String("effect", v.Effect))
		return Skipped("unknown vfx effect: " + v.Effect)
	}

	intensity := v.Intensity
	if intensity == 0 {
		intensity = 1
	}
	duration := v.Duration
	if duration == 0 {
		duration = 1
	}
	target := intensity * scale
	eps := decayEpsilon(effect)

	// write pushes one magnitude sample, deriving the enabled flag from
	// the epsilon threshold.
	write := func(mag float64) {
		st := ec.vfxState()
		ec.setVFX(withChannel(st, effect, vfx.Channel{
			Enabled:   mag > eps,
			Magnitude: mag,
		}))
	}

	if effect == effectGlitch {
		// Glitch is binary: full strength now, clear after the duration.
		write(target)
		<-deps.Tween.After(seconds(duration)).Done()
		write(0)
		return Completed()
	}

	current := channelOf(ec.vfxState(), effect).Magnitude

	attack := 0.3 * duration
	hold := 0.2 * duration
	attackEase := tween.OutCubic
	if effect == effectNoise {
		// Faster linear attack, no hold.
		attack = 0.1 * duration
		hold = 0
		attackEase = tween.Linear
	}
	release := duration - attack - hold

	<-deps.Tween.Go(current, target, seconds(attack), attackEase, write).Done()
	if hold > 0 {
		<-deps.Tween.After(seconds(hold)).Done()
	}
	<-deps.Tween.Go(target, 0, seconds(release), tween.InCubic, write).Done()
	write(0)
	return Completed()
}
