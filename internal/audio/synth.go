// Package audio synthesizes the direction engine's sound palette from
// four long-lived voices and plays the rendered clips through a backend.
// No sample assets: every sound is a recipe over the shared voices.
package audio

import (
	"math"
	"math/rand"
	"sync"

	"go.uber.org/zap"
)

// Synth owns the shared voices. Voices are created lazily on first use
// and reconfigured per call; calls are serialized by the engine's
// sequential dispatch, the mutex only guards stray host use.
type Synth struct {
	backend Backend
	rate    int
	log     *zap.Logger

	mu       sync.Mutex
	noise    *noiseVoice
	metal    *metalVoice
	membrane *membraneVoice
	tone     *toneVoice
}

func NewSynth(backend Backend, sampleRate int, log *zap.Logger) *Synth {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Synth{backend: backend, rate: sampleRate, log: log}
}

// Start activates the audio device if it is not yet active.
func (s *Synth) Start() error {
	return s.backend.Start()
}

// SampleRate reports the render rate.
func (s *Synth) SampleRate() int { return s.rate }

func (s *Synth) getNoise() *noiseVoice {
	if s.noise == nil {
		s.noise = &noiseVoice{rng: rand.New(rand.NewSource(1))}
	}
	return s.noise
}

func (s *Synth) getMetal() *metalVoice {
	if s.metal == nil {
		s.metal = &metalVoice{}
	}
	return s.metal
}

func (s *Synth) getMembrane() *membraneVoice {
	if s.membrane == nil {
		s.membrane = &membraneVoice{}
	}
	return s.membrane
}

func (s *Synth) getTone() *toneVoice {
	if s.tone == nil {
		s.tone = &toneVoice{}
	}
	return s.tone
}

func (s *Synth) play(clip []float32) {
	s.backend.Play(clip, s.rate)
}

// mix adds src into dst starting at offset seconds, clamping to [-1,1].
func (s *Synth) mix(dst, src []float32, offset float64) {
	start := int(offset * float64(s.rate))
	for i, v := range src {
		j := start + i
		if j < 0 || j >= len(dst) {
			continue
		}
		sum := dst[j] + v
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		dst[j] = sum
	}
}

// Explosion is a noise burst layered with a low membrane thump landing
// at half the duration, 6 dB under the burst.
func (s *Synth) Explosion(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gain := dbToLinear(volumeDB)

	nv := s.getNoise()
	nv.gain = gain
	nv.attack = 0.005
	nv.decay = 0.8 * dur
	nv.cutoff = 900
	clip := make([]float32, int(dur*float64(s.rate)))
	s.mix(clip, nv.render(s.rate, dur), 0)

	mv := s.getMembrane()
	mv.gain = dbToLinear(volumeDB - 6)
	mv.pitchHi = 120
	mv.pitchLo = 45
	mv.decay = 0.4 * dur
	s.mix(clip, mv.render(s.rate, dur*0.5), dur*0.5)

	s.play(clip)
}

// Impact is a short resonant metallic hit.
func (s *Synth) Impact(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mv := s.getMetal()
	mv.gain = dbToLinear(volumeDB)
	mv.base = 320
	mv.decay = math.Min(dur, 0.3)
	s.play(mv.render(s.rate, dur))
}

// Whoosh is a quieter, slower-attack noise sweep.
func (s *Synth) Whoosh(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nv := s.getNoise()
	nv.gain = dbToLinear(volumeDB - 8)
	nv.attack = 0.35 * dur
	nv.decay = 0.5 * dur
	nv.cutoff = 1800
	s.play(nv.render(s.rate, dur))
}

// Laser sweeps a tone from a high pitch down to a low one over half the
// duration.
func (s *Synth) Laser(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tv := s.getTone()
	tv.gain = dbToLinear(volumeDB)
	tv.f0 = 2400
	tv.f1 = 220
	tv.attack = 0.005
	tv.release = 0.02
	tv.vibrato = 0
	s.play(tv.render(s.rate, dur*0.5))
}

// Charge sweeps a tone from low to high across the full duration.
func (s *Synth) Charge(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tv := s.getTone()
	tv.gain = dbToLinear(volumeDB)
	tv.f0 = 110
	tv.f1 = 1760
	tv.attack = 0.05 * dur
	tv.release = 0.05 * dur
	tv.vibrato = 8
	s.play(tv.render(s.rate, dur))
}

// powerupNotes is the ascending arpeggio: C5 E5 G5 C6.
var powerupNotes = [...]float64{523.25, 659.25, 783.99, 1046.5}

// Powerup plays four ascending notes; the last sustains the remainder of
// the duration.
func (s *Synth) Powerup(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip := make([]float32, int(dur*float64(s.rate)))
	tv := s.getTone()
	tv.gain = dbToLinear(volumeDB)
	tv.attack = 0.008
	tv.release = 0.02
	tv.vibrato = 0

	step := dur * 0.12
	for i, note := range powerupNotes {
		tv.f0, tv.f1 = note, note
		noteDur := step
		if i == len(powerupNotes)-1 {
			noteDur = dur - step*float64(len(powerupNotes)-1)
			tv.release = 0.25 * noteDur
		}
		s.mix(clip, tv.render(s.rate, noteDur), step*float64(i))
	}
	s.play(clip)
}

// alarmInterval is the beep repeat period.
const alarmInterval = 0.3

// Alarm repeats a single-note beep every 0.3 s for the duration.
func (s *Synth) Alarm(volumeDB, dur float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip := make([]float32, int(dur*float64(s.rate)))
	tv := s.getTone()
	tv.gain = dbToLinear(volumeDB)
	tv.f0, tv.f1 = 880, 880
	tv.attack = 0.005
	tv.release = 0.03
	tv.vibrato = 0
	beep := tv.render(s.rate, 0.15)
	for off := 0.0; off < dur; off += alarmInterval {
		s.mix(clip, beep, off)
	}
	s.play(clip)
}
