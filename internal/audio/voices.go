package audio

import (
	"math"
	"math/rand"
)

// The four shared voices. Each is created once, kept for the life of the
// synth, and reconfigured per invocation — recipes set the fields, then
// render. No voice allocates per note beyond its output slice.

// noiseVoice renders filtered white noise with an attack/decay envelope.
type noiseVoice struct {
	gain    float64 // linear
	attack  float64 // seconds
	decay   float64 // seconds to fall ~-40dB
	cutoff  float64 // one-pole lowpass cutoff in Hz
	rng     *rand.Rand
	lpState float64
}

func (v *noiseVoice) render(rate int, dur float64) []float32 {
	n := int(dur * float64(rate))
	out := make([]float32, n)
	alpha := lowpassAlpha(v.cutoff, rate)
	v.lpState = 0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		white := v.rng.Float64()*2 - 1
		v.lpState += alpha * (white - v.lpState)
		out[i] = float32(v.lpState * v.gain * envelope(t, v.attack, v.decay))
	}
	return out
}

// metalVoice renders a resonant inharmonic hit — a stack of detuned
// partials with a fast shared decay.
type metalVoice struct {
	gain  float64
	base  float64 // fundamental Hz
	decay float64
}

// Inharmonic partial ratios; roughly a struck metal bar.
var metalPartials = [...]float64{1, 1.51, 1.94, 2.69, 3.22}

func (v *metalVoice) render(rate int, dur float64) []float32 {
	n := int(dur * float64(rate))
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		var s float64
		for k, ratio := range metalPartials {
			s += math.Sin(2*math.Pi*v.base*ratio*t) / float64(k+1)
		}
		out[i] = float32(s / float64(len(metalPartials)) * v.gain * envelope(t, 0.002, v.decay))
	}
	return out
}

// membraneVoice renders a low drum thump: a sine whose pitch falls
// exponentially from pitchHi to pitchLo.
type membraneVoice struct {
	gain    float64
	pitchHi float64
	pitchLo float64
	decay   float64
}

func (v *membraneVoice) render(rate int, dur float64) []float32 {
	n := int(dur * float64(rate))
	out := make([]float32, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		// exponential pitch drop over the first third of the clip
		k := math.Min(t/(dur/3+1e-9), 1)
		freq := v.pitchHi * math.Pow(v.pitchLo/v.pitchHi, k)
		phase += 2 * math.Pi * freq / float64(rate)
		out[i] = float32(math.Sin(phase) * v.gain * envelope(t, 0.004, v.decay))
	}
	return out
}

// toneVoice renders a frequency-gliding tone with light vibrato — the
// sweep source behind laser, charge, powerup and alarm.
type toneVoice struct {
	gain    float64
	f0, f1  float64 // glide endpoints in Hz
	attack  float64
	release float64 // seconds of fade at the clip tail
	vibrato float64 // depth in Hz, 0 = pure glide
}

func (v *toneVoice) render(rate int, dur float64) []float32 {
	n := int(dur * float64(rate))
	out := make([]float32, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		k := t / dur
		freq := v.f0 * math.Pow(v.f1/v.f0, k)
		if v.vibrato > 0 {
			freq += v.vibrato * math.Sin(2*math.Pi*6*t)
		}
		phase += 2 * math.Pi * freq / float64(rate)
		env := 1.0
		if v.attack > 0 && t < v.attack {
			env = t / v.attack
		}
		if v.release > 0 && dur-t < v.release {
			env = math.Min(env, (dur-t)/v.release)
		}
		out[i] = float32(math.Sin(phase) * v.gain * env)
	}
	return out
}

// envelope is a linear attack into an exponential decay; decay is the
// time constant scale, not a hard stop.
func envelope(t, attack, decay float64) float64 {
	if attack > 0 && t < attack {
		return t / attack
	}
	if decay <= 0 {
		return 1
	}
	return math.Exp(-(t - attack) * 5 / decay)
}

func lowpassAlpha(cutoff float64, rate int) float64 {
	if cutoff <= 0 {
		return 1
	}
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / float64(rate)
	return dt / (rc + dt)
}

// dbToLinear converts a dB volume (nominal -60..0) to linear gain.
func dbToLinear(db float64) float64 {
	if db < -60 {
		db = -60
	}
	if db > 0 {
		db = 0
	}
	return math.Pow(10, db/20)
}
