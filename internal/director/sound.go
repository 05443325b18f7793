package director

import "go.uber.org/zap"

// defaultVolumeDB applies when a sound command carries no volume.
const defaultVolumeDB = -6.0

// execSound maps the sound identifier to a synth recipe, activating the
// audio device first if needed. Completion is a fixed-duration timer,
// deliberately decoupled from the clip's audible tail.
func execSound(ec *Context, deps *Deps, cmd Command) Outcome {
	s := cmd.Sound
	if s == nil {
		return Skipped("sound command missing payload")
	}
	if deps.Synth == nil {
		deps.Log.Debug("sound command with no synth bound", zap.String("sound", s.Sound))
		return Skipped("no audio synth bound")
	}
	if err := deps.Synth.Start(); err != nil {
		return Failed(err)
	}

	vol := defaultVolumeDB
	if s.VolumeDB != nil {
		vol = *s.VolumeDB
	}
	dur := s.Duration
	if dur <= 0 {
		dur = 1
	}

	switch s.Sound {
	case "explosion":
		deps.Synth.Explosion(vol, dur)
	case "impact":
		deps.Synth.Impact(vol, dur)
	case "whoosh":
		deps.Synth.Whoosh(vol, dur)
	case "laser":
		deps.Synth.Laser(vol, dur)
	case "charge":
		deps.Synth.Charge(vol, dur)
	case "powerup":
		deps.Synth.Powerup(vol, dur)
	case "alarm":
		deps.Synth.Alarm(vol, dur)
	default:
		deps.Log.Debug("unknown sound", zap.String("sound", s.Sound))
		return Skipped("unknown sound: " + s.Sound)
	}

	<-deps.Tween.After(seconds(dur)).Done()
	return Completed()
}
