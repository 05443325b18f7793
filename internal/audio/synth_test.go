package audio

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

// captureBackend records the last clip instead of playing it.
type captureBackend struct {
	clips [][]float32
	rate  int
}

func (b *captureBackend) Start() error { return nil }
func (b *captureBackend) Play(samples []float32, rate int) {
	b.clips = append(b.clips, samples)
	b.rate = rate
}

func peak(clip []float32) float64 {
	var p float64
	for _, s := range clip {
		if a := math.Abs(float64(s)); a > p {
			p = a
		}
	}
	return p
}

func TestRecipesRenderAudibleClips(t *testing.T) {
	const rate = 8000 // low rate keeps the test cheap
	cases := []struct {
		name    string
		trigger func(s *Synth)
		wantLen int // samples
	}{
		{"explosion", func(s *Synth) { s.Explosion(-6, 0.5) }, int(0.5 * rate)},
		{"impact", func(s *Synth) { s.Impact(-6, 0.2) }, int(0.2 * rate)},
		{"whoosh", func(s *Synth) { s.Whoosh(-6, 0.4) }, int(0.4 * rate)},
		{"laser", func(s *Synth) { s.Laser(-6, 0.4) }, int(0.2 * rate)}, // half duration
		{"charge", func(s *Synth) { s.Charge(-6, 0.4) }, int(0.4 * rate)},
		{"powerup", func(s *Synth) { s.Powerup(-6, 0.6) }, int(0.6 * rate)},
		{"alarm", func(s *Synth) { s.Alarm(-6, 0.9) }, int(0.9 * rate)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &captureBackend{}
			s := NewSynth(b, rate, zap.NewNop())
			tc.trigger(s)
			if len(b.clips) != 1 {
				t.Fatalf("played %d clips, want 1", len(b.clips))
			}
			clip := b.clips[0]
			if len(clip) != tc.wantLen {
				t.Fatalf("clip length %d samples, want %d", len(clip), tc.wantLen)
			}
			if p := peak(clip); p < 0.01 || p > 1.0 {
				t.Fatalf("clip peak %v out of audible range", p)
			}
		})
	}
}

func TestVolumeScalesGain(t *testing.T) {
	const rate = 8000
	loud := &captureBackend{}
	quiet := &captureBackend{}
	NewSynth(loud, rate, zap.NewNop()).Impact(0, 0.2)
	NewSynth(quiet, rate, zap.NewNop()).Impact(-20, 0.2)
	if peak(quiet.clips[0]) >= peak(loud.clips[0]) {
		t.Fatalf("-20dB clip (%v) not quieter than 0dB clip (%v)",
			peak(quiet.clips[0]), peak(loud.clips[0]))
	}
}

func TestVoicesAreShared(t *testing.T) {
	s := NewSynth(&captureBackend{}, 8000, zap.NewNop())
	s.Laser(-6, 0.2)
	first := s.tone
	s.Charge(-6, 0.2)
	if s.tone != first {
		t.Fatal("tone voice recreated between invocations")
	}
}

func TestDBClamp(t *testing.T) {
	if g := dbToLinear(10); g != 1 {
		t.Fatalf("positive dB should clamp to unity, got %v", g)
	}
	if g := dbToLinear(-100); g != dbToLinear(-60) {
		t.Fatalf("below -60dB should clamp, got %v", g)
	}
}
